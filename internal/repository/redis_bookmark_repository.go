package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const bookmarkKeyPrefix = "spark:bookmarks:"

// RedisSetClient is the subset of the Redis client used for bookmark sets.
type RedisSetClient interface {
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
}

// RedisBookmarkRepository keeps one Redis set of program ids per user.
type RedisBookmarkRepository struct {
	client RedisSetClient
	logger *zap.Logger
}

// NewRedisBookmarkRepository constructs a Redis-backed bookmark store.
func NewRedisBookmarkRepository(client RedisSetClient, logger *zap.Logger) *RedisBookmarkRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBookmarkRepository{client: client, logger: logger}
}

func bookmarkKey(userID string) string {
	return bookmarkKeyPrefix + userID
}

// Add records a bookmark. SADD is idempotent.
func (r *RedisBookmarkRepository) Add(ctx context.Context, userID string, programID int) error {
	key := bookmarkKey(userID)
	if err := r.client.SAdd(ctx, key, strconv.Itoa(programID)).Err(); err != nil {
		return fmt.Errorf("redis sadd %s: %w", key, err)
	}
	return nil
}

// Remove deletes a bookmark if present.
func (r *RedisBookmarkRepository) Remove(ctx context.Context, userID string, programID int) error {
	key := bookmarkKey(userID)
	if err := r.client.SRem(ctx, key, strconv.Itoa(programID)).Err(); err != nil {
		return fmt.Errorf("redis srem %s: %w", key, err)
	}
	return nil
}

// ListIDs returns the bookmarked ids in ascending order. Members that are not integers are skipped.
func (r *RedisBookmarkRepository) ListIDs(ctx context.Context, userID string) ([]int, error) {
	key := bookmarkKey(userID)
	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers %s: %w", key, err)
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, convErr := strconv.Atoi(m)
		if convErr != nil {
			r.logger.Warn("skipping malformed bookmark member", zap.String("key", key), zap.String("member", m))
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}
