package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/spark-api/internal/models"
	appErrors "github.com/noah-isme/spark-api/pkg/errors"
	"github.com/noah-isme/spark-api/pkg/sanitize"
)

type contactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context, filter models.IntakeFilter) ([]models.ContactMessage, error)
}

// ContactService stores messages from the contact form.
type ContactService struct {
	repo      contactRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs a ContactService.
func NewContactService(repo contactRepository, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ContactService{repo: repo, validator: validate, logger: logger}
}

// Send validates and stores a message with status unread.
func (s *ContactService) Send(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.Wrap(err, "invalid contact payload")
	}

	msg := &models.ContactMessage{
		Name:    sanitize.Text(req.Name),
		Email:   strings.ToLower(req.Email),
		Subject: sanitize.Text(req.Subject),
		Message: sanitize.Text(req.Message),
		Status:  models.ContactStatusUnread,
	}
	if msg.Name == "" || msg.Subject == "" || msg.Message == "" {
		return nil, appErrors.ErrValidation.WithMessage("name, subject and message must contain text")
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, appErrors.ErrInternal.Wrap(err, "failed to send message")
	}
	s.logger.Info("contact message received", zap.String("message_id", msg.ID))
	return msg, nil
}

// List returns messages for the admin view.
func (s *ContactService) List(ctx context.Context, filter models.IntakeFilter) ([]models.ContactMessage, error) {
	messages, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.ErrInternal.Wrap(err, "failed to list contact messages")
	}
	return messages, nil
}
