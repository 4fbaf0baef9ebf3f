package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// BookmarkRepository stores bookmarks in Postgres.
type BookmarkRepository struct {
	db *sqlx.DB
}

// NewBookmarkRepository creates a new instance of BookmarkRepository.
func NewBookmarkRepository(db *sqlx.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

// Add records a bookmark. Adding an existing bookmark is a no-op.
func (r *BookmarkRepository) Add(ctx context.Context, userID string, programID int) error {
	const query = `INSERT INTO bookmarks (id, user_id, program_id, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT (user_id, program_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, programID, time.Now().UTC()); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

// Remove deletes a bookmark if present.
func (r *BookmarkRepository) Remove(ctx context.Context, userID string, programID int) error {
	const query = `DELETE FROM bookmarks WHERE user_id = $1 AND program_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, programID); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}

// ListIDs returns the bookmarked program ids for a user, oldest first.
func (r *BookmarkRepository) ListIDs(ctx context.Context, userID string) ([]int, error) {
	const query = `SELECT program_id FROM bookmarks WHERE user_id = $1 ORDER BY created_at, program_id`
	ids := []int{}
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return ids, nil
}
