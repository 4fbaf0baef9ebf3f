package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/spark-api/internal/models"
)

const (
	defaultIntakeLimit = 50
	maxIntakeLimit     = 200
)

// SubmissionRepository persists proposed programs.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository creates a new instance of SubmissionRepository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a submission. The caller assigns the id.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.ProgramSubmission) error {
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now().UTC()
	}
	if submission.Status == "" {
		submission.Status = models.SubmissionStatusPending
	}
	const query = `INSERT INTO program_submissions (id, title, description, state, fields, other_field, grade_level, deadline, cost, duration, website, contact_email, organization_name, submitted_by, status, submitted_at)
VALUES (:id, :title, :description, :state, :fields, :other_field, :grade_level, :deadline, :cost, :duration, :website, :contact_email, :organization_name, :submitted_by, :status, :submitted_at)
ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, submission); err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// List returns submissions, newest first, optionally narrowed by status.
func (r *SubmissionRepository) List(ctx context.Context, filter models.IntakeFilter) ([]models.ProgramSubmission, error) {
	query := `SELECT id, title, description, state, fields, other_field, grade_level, deadline, cost, duration, website, contact_email, organization_name, submitted_by, status, submitted_at FROM program_submissions`
	query, args := intakeQuery(query, filter)

	submissions := []models.ProgramSubmission{}
	if err := r.db.SelectContext(ctx, &submissions, query, args...); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

func intakeQuery(base string, filter models.IntakeFilter) (string, []interface{}) {
	var args []interface{}
	if filter.Status != "" {
		base += " WHERE status = $1"
		args = append(args, filter.Status)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultIntakeLimit
	}
	if limit > maxIntakeLimit {
		limit = maxIntakeLimit
	}
	return fmt.Sprintf("%s ORDER BY submitted_at DESC LIMIT %d", base, limit), args
}
