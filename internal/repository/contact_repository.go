package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/spark-api/internal/models"
)

// ContactRepository persists contact form messages.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository creates a new instance of ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a contact message.
func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.SubmittedAt.IsZero() {
		msg.SubmittedAt = time.Now().UTC()
	}
	if msg.Status == "" {
		msg.Status = models.ContactStatusUnread
	}
	const query = `INSERT INTO contact_messages (id, name, email, subject, message, status, submitted_at) VALUES (:id, :name, :email, :subject, :message, :status, :submitted_at)`
	if _, err := r.db.NamedExecContext(ctx, query, msg); err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

// List returns contact messages, newest first.
func (r *ContactRepository) List(ctx context.Context, filter models.IntakeFilter) ([]models.ContactMessage, error) {
	query, args := intakeQuery(`SELECT id, name, email, subject, message, status, submitted_at FROM contact_messages`, filter)

	messages := []models.ContactMessage{}
	if err := r.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return messages, nil
}
