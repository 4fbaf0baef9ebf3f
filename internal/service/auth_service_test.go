package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/spark-api/internal/models"
	appErrors "github.com/noah-isme/spark-api/pkg/errors"
)

type mockAuthRepo struct {
	users     map[string]*models.User
	findErr   error
	createErr error
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{users: map[string]*models.User{}}
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "user-" + user.Email
	m.users[user.ID] = user
	return nil
}

func newTestAuthService(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, nil, zap.NewNop(), AuthConfig{
		AccessTokenSecret: "secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "spark-api",
	})
}

func seedUser(t *testing.T, repo *mockAuthRepo, email, password string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: "u-" + email, Email: email, PasswordHash: string(hash), FullName: "Seed", Role: role}
	repo.users[user.ID] = user
	return user
}

func TestAuthServiceRegister(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newTestAuthService(repo)

	res, err := svc.Register(context.Background(), models.RegisterRequest{FullName: "Maya Chen", Email: " Maya@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, "maya@example.com", res.User.Email)
	assert.Equal(t, models.RoleStudent, res.User.Role)

	stored := repo.users[res.User.ID]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, res.User.ID, claims.Subject)
}

func TestAuthServiceRegisterConflicts(t *testing.T) {
	repo := newMockAuthRepo()
	seedUser(t, repo, "taken@example.com", "secret1", models.RoleStudent)
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{FullName: "X", Email: "taken@example.com", Password: "secret1"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)

	repo.createErr = &pq.Error{Code: "23505"}
	_, err = svc.Register(context.Background(), models.RegisterRequest{FullName: "Y", Email: "race@example.com", Password: "secret1"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	svc := newTestAuthService(newMockAuthRepo())

	_, err := svc.Register(context.Background(), models.RegisterRequest{FullName: "Short", Email: "a@example.com", Password: "12345"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAuthServiceLogin(t *testing.T) {
	repo := newMockAuthRepo()
	user := seedUser(t, repo, "admin@example.com", "password", models.RoleAdmin)
	svc := newTestAuthService(repo)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.User.ID)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "password"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)

	repo.findErr = errors.New("db down")
	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "password"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}

func TestAuthServiceMe(t *testing.T) {
	repo := newMockAuthRepo()
	user := seedUser(t, repo, "me@example.com", "password", models.RoleStudent)
	svc := newTestAuthService(repo)

	info, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", info.Email)

	_, err = svc.Me(context.Background(), "missing")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestAuthServiceValidateTokenRejects(t *testing.T) {
	svc := newTestAuthService(newMockAuthRepo())

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "spark-api",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		UserID:           "u1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"},
	})
	signed, err = foreign.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)

	wrongKey := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		UserID:           "u1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "spark-api"},
	})
	signed, err = wrongKey.SignedString([]byte("other"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}
