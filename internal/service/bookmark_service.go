package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/spark-api/internal/models"
	appErrors "github.com/noah-isme/spark-api/pkg/errors"
)

const defaultReminderWindow = 7 * 24 * time.Hour

// BookmarkRepository is implemented by the Postgres and Redis bookmark stores.
type BookmarkRepository interface {
	Add(ctx context.Context, userID string, programID int) error
	Remove(ctx context.Context, userID string, programID int) error
	ListIDs(ctx context.Context, userID string) ([]int, error)
}

// BookmarkService manages per-user bookmarks and deadline reminders.
type BookmarkService struct {
	repo    BookmarkRepository
	catalog ProgramCatalog
	metrics *MetricsService
	logger  *zap.Logger
	window  time.Duration
	now     func() time.Time
}

// NewBookmarkService constructs a BookmarkService. A non-positive window defaults to seven days.
func NewBookmarkService(repo BookmarkRepository, programs ProgramCatalog, window time.Duration, metrics *MetricsService, logger *zap.Logger) *BookmarkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if window <= 0 {
		window = defaultReminderWindow
	}
	return &BookmarkService{
		repo:    repo,
		catalog: programs,
		metrics: metrics,
		logger:  logger,
		window:  window,
		now:     time.Now,
	}
}

// Add bookmarks a program. Adding twice is not an error.
func (s *BookmarkService) Add(ctx context.Context, userID string, programID int) error {
	if _, ok := s.catalog.Get(programID); !ok {
		return appErrors.ErrNotFound.WithMessage("program not found")
	}
	if err := s.repo.Add(ctx, userID, programID); err != nil {
		return s.storeError(err, "failed to save bookmark")
	}
	s.logger.Debug("bookmark added", zap.String("user_id", userID), zap.Int("program_id", programID))
	return nil
}

// Remove drops a bookmark. Removing a missing bookmark is not an error.
func (s *BookmarkService) Remove(ctx context.Context, userID string, programID int) error {
	if _, ok := s.catalog.Get(programID); !ok {
		return appErrors.ErrNotFound.WithMessage("program not found")
	}
	if err := s.repo.Remove(ctx, userID, programID); err != nil {
		return s.storeError(err, "failed to remove bookmark")
	}
	return nil
}

// IDs returns the bookmarked program ids.
func (s *BookmarkService) IDs(ctx context.Context, userID string) ([]int, error) {
	ids, err := s.repo.ListIDs(ctx, userID)
	if err != nil {
		return nil, s.storeError(err, "failed to load bookmarks")
	}
	return ids, nil
}

// List returns the bookmarked programs in catalog order. Ids no longer in the catalog are skipped.
func (s *BookmarkService) List(ctx context.Context, userID string) ([]models.Program, error) {
	ids, err := s.IDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	marked := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		marked[id] = struct{}{}
	}

	programs := []models.Program{}
	for _, p := range s.catalog.All() {
		if _, ok := marked[p.ID]; ok {
			programs = append(programs, p)
		}
	}
	return programs, nil
}

// Reminders lists bookmarked programs whose deadline falls between today and the reminder window,
// soonest first.
func (s *BookmarkService) Reminders(ctx context.Context, userID string) ([]models.DeadlineReminder, error) {
	programs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := truncateDay(s.now())
	horizon := int(s.window / (24 * time.Hour))

	reminders := []models.DeadlineReminder{}
	for _, p := range programs {
		deadline, err := p.DeadlineDate()
		if err != nil {
			s.logger.Warn("skipping program with unparseable deadline", zap.Int("program_id", p.ID), zap.String("deadline", p.Deadline))
			continue
		}
		days := int(deadline.Sub(today).Hours() / 24)
		if days < 0 || days > horizon {
			continue
		}
		reminders = append(reminders, models.DeadlineReminder{
			ProgramID: p.ID,
			Title:     p.Title,
			Deadline:  p.Deadline,
			DaysUntil: days,
			Message:   reminderMessage(days),
		})
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].DaysUntil < reminders[j].DaysUntil
	})
	return reminders, nil
}

func (s *BookmarkService) storeError(err error, message string) error {
	s.metrics.RecordBookmarkError()
	s.logger.Error(message, zap.Error(err))
	return appErrors.ErrUnavailable.Wrap(err, message)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func reminderMessage(days int) string {
	switch days {
	case 0:
		return "Due today!"
	case 1:
		return "Due tomorrow!"
	default:
		return fmt.Sprintf("Due in %d days", days)
	}
}
