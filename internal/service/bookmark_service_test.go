package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spark-api/internal/models"
	appErrors "github.com/noah-isme/spark-api/pkg/errors"
)

func newTestBookmarkService(repo *mockBookmarkRepo, now time.Time) *BookmarkService {
	svc := NewBookmarkService(repo, newTestStore(), 0, nil, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestBookmarkServiceAddRemoveList(t *testing.T) {
	repo := newMockBookmarkRepo()
	svc := newTestBookmarkService(repo, time.Now())
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", 4))
	require.NoError(t, svc.Add(ctx, "u1", 2))
	require.NoError(t, svc.Add(ctx, "u1", 4))

	programs, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Equal(t, 2, programs[0].ID)
	assert.Equal(t, 4, programs[1].ID)

	ids, err := svc.IDs(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{2, 4}, ids)

	require.NoError(t, svc.Remove(ctx, "u1", 4))
	require.NoError(t, svc.Remove(ctx, "u1", 4))
	ids, err = svc.IDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids)
}

func TestBookmarkServiceUnknownProgram(t *testing.T) {
	repo := newMockBookmarkRepo()
	svc := newTestBookmarkService(repo, time.Now())

	for _, err := range []error{svc.Add(context.Background(), "u1", 404), svc.Remove(context.Background(), "u1", 404)} {
		var appErr *appErrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	}
	assert.Empty(t, repo.added)
	assert.Empty(t, repo.removed)
}

func TestBookmarkServiceStoreFailure(t *testing.T) {
	repo := newMockBookmarkRepo()
	repo.err = errors.New("connection reset")
	svc := newTestBookmarkService(repo, time.Now())

	err := svc.Add(context.Background(), "u1", 1)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnavailable.Status, appErr.Status)

	_, err = svc.List(context.Background(), "u1")
	assert.Error(t, err)
}

func TestBookmarkServiceListSkipsUnknownIDs(t *testing.T) {
	repo := newMockBookmarkRepo()
	repo.ids["u1"] = []int{77, 3}
	svc := newTestBookmarkService(repo, time.Now())

	programs, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, 3, programs[0].ID)
}

func TestBookmarkServiceReminders(t *testing.T) {
	repo := newMockBookmarkRepo()
	repo.ids["u1"] = []int{1, 2, 3, 4}
	// Deadlines: 1 → 2025-03-10, 2 → 2025-03-01, 3 → 2025-02-20, 4 → 2025-03-04.
	svc := newTestBookmarkService(repo, time.Date(2025, 2, 28, 18, 30, 0, 0, time.UTC))

	reminders, err := svc.Reminders(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []models.DeadlineReminder{
		{ProgramID: 2, Title: "National Coding League", Deadline: "2025-03-01", DaysUntil: 1, Message: "Due tomorrow!"},
		{ProgramID: 4, Title: "STEM Scholars", Deadline: "2025-03-04", DaysUntil: 4, Message: "Due in 4 days"},
	}, reminders)
}

func TestBookmarkServiceRemindersDueToday(t *testing.T) {
	repo := newMockBookmarkRepo()
	repo.ids["u1"] = []int{3}
	svc := newTestBookmarkService(repo, time.Date(2025, 2, 20, 23, 59, 0, 0, time.UTC))

	reminders, err := svc.Reminders(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Due today!", reminders[0].Message)
	assert.Equal(t, 0, reminders[0].DaysUntil)
}

func TestBookmarkServiceReminderWindow(t *testing.T) {
	repo := newMockBookmarkRepo()
	repo.ids["u1"] = []int{1}
	svc := NewBookmarkService(repo, newTestStore(), 14*24*time.Hour, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC) }

	reminders, err := svc.Reminders(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Due in 13 days", reminders[0].Message)
}

func TestReminderMessage(t *testing.T) {
	assert.Equal(t, "Due today!", reminderMessage(0))
	assert.Equal(t, "Due tomorrow!", reminderMessage(1))
	assert.Equal(t, "Due in 7 days", reminderMessage(7))
}
