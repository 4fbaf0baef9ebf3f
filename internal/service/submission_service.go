package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/noah-isme/spark-api/internal/dto"
	"github.com/noah-isme/spark-api/internal/models"
	appErrors "github.com/noah-isme/spark-api/pkg/errors"
	"github.com/noah-isme/spark-api/pkg/jobs"
	"github.com/noah-isme/spark-api/pkg/sanitize"
)

// JobTypeProgramSubmission labels queued submission jobs.
const JobTypeProgramSubmission = "program_submission"

type submissionRepository interface {
	Create(ctx context.Context, submission *models.ProgramSubmission) error
	List(ctx context.Context, filter models.IntakeFilter) ([]models.ProgramSubmission, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// SubmissionService accepts program submissions and persists them in the background.
type SubmissionService struct {
	repo      submissionRepository
	queue     jobEnqueuer
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewSubmissionService constructs a SubmissionService. Until UseQueue is called submissions are stored inline.
func NewSubmissionService(repo submissionRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SubmissionService{repo: repo, validator: validate, metrics: metrics, logger: logger, now: time.Now}
}

// UseQueue routes new submissions through q. Handle must be the queue's handler.
func (s *SubmissionService) UseQueue(q jobEnqueuer) {
	s.queue = q
}

// Submit validates and sanitises req and hands it off for persistence.
func (s *SubmissionService) Submit(ctx context.Context, req models.SubmissionRequest, submittedBy string) (*dto.SubmissionAccepted, error) {
	req.ContactEmail = strings.TrimSpace(req.ContactEmail)
	req.Website = strings.TrimSpace(req.Website)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.Wrap(err, "invalid submission payload")
	}
	if req.State != models.AllStates && !models.IsUSState(req.State) {
		return nil, appErrors.ErrValidation.WithMessage(fmt.Sprintf("unknown state %q", req.State))
	}

	submission := s.buildSubmission(req, submittedBy)
	if containsString(submission.Fields, models.OtherField) && submission.OtherField == "" {
		return nil, appErrors.ErrValidation.WithMessage("other_field is required when fields include Other")
	}
	if len(submission.Fields) == 0 {
		return nil, appErrors.ErrValidation.WithMessage("at least one field is required")
	}

	if s.queue == nil {
		if err := s.persist(ctx, submission); err != nil {
			return nil, appErrors.ErrInternal.Wrap(err, "failed to store submission")
		}
	} else {
		job := jobs.Job{ID: submission.ID, Type: JobTypeProgramSubmission, Payload: submission}
		if err := s.queue.Enqueue(job); err != nil {
			s.logger.Error("failed to enqueue submission", zap.String("submission_id", submission.ID), zap.Error(err))
			return nil, appErrors.ErrUnavailable.Wrap(err, "submissions are temporarily unavailable")
		}
		s.metrics.RecordSubmissionQueued()
	}

	s.logger.Info("program submission accepted", zap.String("submission_id", submission.ID), zap.String("title", submission.Title))
	return &dto.SubmissionAccepted{ID: submission.ID, Status: submission.Status}, nil
}

// Handle persists a queued submission. It is the jobs.Handler for the submission queue.
func (s *SubmissionService) Handle(ctx context.Context, job jobs.Job) error {
	submission, ok := job.Payload.(*models.ProgramSubmission)
	if !ok {
		s.logger.Error("unexpected submission payload", zap.String("job_id", job.ID), zap.String("type", fmt.Sprintf("%T", job.Payload)))
		return nil
	}
	return s.persist(ctx, submission)
}

// List returns submissions for the admin view.
func (s *SubmissionService) List(ctx context.Context, filter models.IntakeFilter) ([]models.ProgramSubmission, error) {
	submissions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.ErrInternal.Wrap(err, "failed to list submissions")
	}
	return submissions, nil
}

func (s *SubmissionService) persist(ctx context.Context, submission *models.ProgramSubmission) error {
	err := s.repo.Create(ctx, submission)
	s.metrics.RecordSubmissionPersisted(err)
	if err != nil {
		return err
	}
	s.logger.Debug("program submission stored", zap.String("submission_id", submission.ID))
	return nil
}

func (s *SubmissionService) buildSubmission(req models.SubmissionRequest, submittedBy string) *models.ProgramSubmission {
	submission := &models.ProgramSubmission{
		ID:               ulid.Make().String(),
		Title:            sanitize.Text(req.Title),
		Description:      sanitize.Text(req.Description),
		State:            req.State,
		Fields:           pq.StringArray(uniqueStrings(sanitize.Texts(req.Fields))),
		OtherField:       sanitize.Text(req.OtherField),
		GradeLevel:       pq.Int64Array(uniqueGrades(req.GradeLevel)),
		Deadline:         req.Deadline,
		Cost:             sanitize.Text(req.Cost),
		Duration:         sanitize.Text(req.Duration),
		Website:          req.Website,
		ContactEmail:     strings.ToLower(req.ContactEmail),
		OrganizationName: sanitize.Text(req.OrganizationName),
		Status:           models.SubmissionStatusPending,
		SubmittedAt:      s.now().UTC(),
	}
	if submittedBy != "" {
		submission.SubmittedBy = &submittedBy
	}
	return submission
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func uniqueGrades(values []int) []int64 {
	seen := make(map[int]struct{}, len(values))
	out := make([]int64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, int64(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

