package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNotStarted is returned when enqueueing before Start.
	ErrNotStarted = errors.New("queue not started")
	// ErrClosed is returned once Stop has been called.
	ErrClosed = errors.New("queue closed")
	// ErrFull is returned when the buffer cannot take another job.
	ErrFull = errors.New("queue full")
)

// Job represents a queued background task.
type Job struct {
	ID       string
	Type     string
	Payload  interface{}
	Attempt  int
	Enqueued time.Time
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Queue is an in-memory job dispatcher backed by goroutines. Enqueue never blocks.
// Stop drains jobs that are already buffered before returning.
type Queue struct {
	name    string
	handler Handler

	workers    int
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger

	jobs        chan Job
	ctx         context.Context
	cancel      context.CancelFunc
	retryCtx    context.Context
	cancelRetry context.CancelFunc
	workerWG    sync.WaitGroup
	retryWG     sync.WaitGroup
	mu          sync.RWMutex
	started     bool
	closed      bool
}

// NewQueue builds a new queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 16
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue{
		name:       name,
		handler:    handler,
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger.With(zap.String("queue", name)),
		jobs:       make(chan Job, cfg.BufferSize),
	}
}

// Start begins worker consumption. Calling it again is a no-op.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	q.retryCtx, q.cancelRetry = context.WithCancel(q.ctx)
	for i := 0; i < q.workers; i++ {
		q.workerWG.Add(1)
		go q.worker()
	}
	q.started = true
	q.logger.Info("queue started", zap.Int("workers", q.workers))
}

// Stop refuses new jobs, drops pending retries and waits for buffered jobs to finish.
// When ctx expires first, in-flight handlers are cancelled and ctx.Err() is returned.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.started || q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	q.cancelRetry()
	q.retryWG.Wait()
	close(q.jobs)

	done := make(chan struct{})
	go func() {
		q.workerWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		q.logger.Info("queue stopped")
		return nil
	case <-ctx.Done():
		q.cancel()
		<-done
		q.logger.Warn("queue stopped before drain completed", zap.Error(ctx.Err()))
		return ctx.Err()
	}
}

// Enqueue hands a job to the workers without blocking.
func (q *Queue) Enqueue(job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if !q.started {
		return fmt.Errorf("%s: %w", q.name, ErrNotStarted)
	}
	if q.closed {
		return fmt.Errorf("%s: %w", q.name, ErrClosed)
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return fmt.Errorf("%s: %w", q.name, ErrFull)
	}
}

// Pending reports the number of buffered jobs.
func (q *Queue) Pending() int {
	return len(q.jobs)
}

func (q *Queue) worker() {
	defer q.workerWG.Done()
	for job := range q.jobs {
		if err := q.handler(q.ctx, job); err != nil {
			q.handleFailure(job, err)
		}
	}
}

func (q *Queue) handleFailure(job Job, err error) {
	job.Attempt++
	if job.Attempt > q.maxRetries {
		q.logger.Error("job exceeded retries", zap.String("job_id", job.ID), zap.String("type", job.Type), zap.Int("attempts", job.Attempt), zap.Error(err))
		return
	}

	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		q.logger.Error("job dropped during shutdown", zap.String("job_id", job.ID), zap.String("type", job.Type), zap.Error(err))
		return
	}
	q.retryWG.Add(1)
	q.mu.RUnlock()

	q.logger.Warn("job failed, retrying", zap.String("job_id", job.ID), zap.String("type", job.Type), zap.Int("attempt", job.Attempt), zap.Error(err))

	delay := q.retryDelay * time.Duration(job.Attempt)
	go func(j Job) {
		defer q.retryWG.Done()
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-q.retryCtx.Done():
			q.logger.Error("retry abandoned", zap.String("job_id", j.ID), zap.String("type", j.Type))
		case <-timer.C:
			if err := q.Enqueue(j); err != nil {
				q.logger.Error("failed to requeue job", zap.String("job_id", j.ID), zap.Error(err))
			}
		}
	}(job)
}
