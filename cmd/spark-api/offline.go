package main

import (
	"context"

	"github.com/noah-isme/spark-api/internal/dto"
	"github.com/noah-isme/spark-api/internal/models"
	"github.com/noah-isme/spark-api/internal/service"
	appErrors "github.com/noah-isme/spark-api/pkg/errors"
)

// Stand-ins for the Postgres-backed collaborators when the database could not be reached
// at boot. The catalog keeps serving; account, bookmark and intake calls answer 503.

func errStorageOffline(feature string) error {
	return appErrors.ErrUnavailable.WithMessage(feature+" is temporarily unavailable")
}

// offlineAuth still validates bearer tokens, which only needs the signing secret.
type offlineAuth struct {
	*service.AuthService
}

func (offlineAuth) Register(context.Context, models.RegisterRequest) (*models.LoginResponse, error) {
	return nil, errStorageOffline("registration")
}

func (offlineAuth) Login(context.Context, models.LoginRequest) (*models.LoginResponse, error) {
	return nil, errStorageOffline("sign-in")
}

func (offlineAuth) Me(context.Context, string) (*models.UserInfo, error) {
	return nil, errStorageOffline("account lookup")
}

type offlineBookmarks struct{}

func (offlineBookmarks) Add(context.Context, string, int) error {
	return errStorageOffline("bookmarking")
}

func (offlineBookmarks) Remove(context.Context, string, int) error {
	return errStorageOffline("bookmarking")
}

func (offlineBookmarks) IDs(context.Context, string) ([]int, error) {
	return nil, errStorageOffline("bookmarking")
}

func (offlineBookmarks) List(context.Context, string) ([]models.Program, error) {
	return nil, errStorageOffline("bookmarking")
}

func (offlineBookmarks) Reminders(context.Context, string) ([]models.DeadlineReminder, error) {
	return nil, errStorageOffline("bookmarking")
}

type offlineSubmissions struct{}

func (offlineSubmissions) Submit(context.Context, models.SubmissionRequest, string) (*dto.SubmissionAccepted, error) {
	return nil, errStorageOffline("program submission")
}

func (offlineSubmissions) List(context.Context, models.IntakeFilter) ([]models.ProgramSubmission, error) {
	return nil, errStorageOffline("program submission")
}

type offlineContacts struct{}

func (offlineContacts) Send(context.Context, models.ContactRequest) (*models.ContactMessage, error) {
	return nil, errStorageOffline("contact")
}

func (offlineContacts) List(context.Context, models.IntakeFilter) ([]models.ContactMessage, error) {
	return nil, errStorageOffline("contact")
}
