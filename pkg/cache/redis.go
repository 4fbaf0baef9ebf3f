package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/spark-api/pkg/config"
)

// NewRedis returns a configured Redis client, retrying the initial ping until connectTimeout elapses.
func NewRedis(ctx context.Context, cfg config.RedisConfig, connectTimeout time.Duration, logger *zap.Logger) (*redis.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return client.Ping(pingCtx).Err()
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = connectTimeout
	notify := func(err error, wait time.Duration) {
		logger.Warn("redis not ready, retrying", zap.String("addr", addr), zap.Error(err), zap.Duration("wait", wait))
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(b, ctx), notify); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return client, nil
}
