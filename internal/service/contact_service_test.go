package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spark-api/internal/models"
	appErrors "github.com/noah-isme/spark-api/pkg/errors"
)

type mockContactRepo struct {
	created []*models.ContactMessage
	err     error
}

func (m *mockContactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	if m.err != nil {
		return m.err
	}
	msg.ID = "c1"
	m.created = append(m.created, msg)
	return nil
}

func (m *mockContactRepo) List(ctx context.Context, filter models.IntakeFilter) ([]models.ContactMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.ContactMessage, 0, len(m.created))
	for _, c := range m.created {
		out = append(out, *c)
	}
	return out, nil
}

func TestContactServiceSend(t *testing.T) {
	repo := &mockContactRepo{}
	svc := NewContactService(repo, nil, nil)

	msg, err := svc.Send(context.Background(), models.ContactRequest{
		Name:    "Ana Ruiz",
		Email:   " Ana@Example.com",
		Subject: "Listing update",
		Message: "<p>Our deadline moved.</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", msg.ID)
	assert.Equal(t, models.ContactStatusUnread, msg.Status)
	assert.Equal(t, "ana@example.com", msg.Email)
	assert.Equal(t, "Our deadline moved.", msg.Message)

	list, err := svc.List(context.Background(), models.IntakeFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestContactServiceValidation(t *testing.T) {
	svc := NewContactService(&mockContactRepo{}, nil, nil)

	for _, req := range []models.ContactRequest{
		{Name: "A", Email: "bad", Subject: "S", Message: "M"},
		{Name: "A", Email: "a@example.com", Subject: "S"},
		{Name: "<b></b>", Email: "a@example.com", Subject: "S", Message: "M"},
	} {
		_, err := svc.Send(context.Background(), req)
		var appErr *appErrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	}
}

func TestContactServiceStoreError(t *testing.T) {
	svc := NewContactService(&mockContactRepo{err: errors.New("down")}, nil, nil)

	_, err := svc.Send(context.Background(), models.ContactRequest{Name: "A", Email: "a@example.com", Subject: "S", Message: "M"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}
