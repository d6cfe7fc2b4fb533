package service

import (
	"context"
	"time"

	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/pkg/logger"
	"mathtutor-be/internal/repository/specification"
	"mathtutor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IStreakService interface {
	// Touch registers activity for today and returns the resulting streak.
	// Calling it twice on the same day is a no-op the second time.
	Touch(ctx context.Context, userId uuid.UUID) (*dto.StreakResponse, error)
	// DecaySweep zeroes streaks for users with no activity since yesterday.
	DecaySweep(ctx context.Context, now time.Time) (int64, error)
}

type streakService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewStreakService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IStreakService {
	return &streakService{
		uowFactory: uowFactory,
		log:        log,
	}
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// applyStreakTouch is the transition function for a day of activity.
// It returns the new streak count and whether anything changed.
func applyStreakTouch(current int, lastActivityDate *string, today string, yesterday string) (int, bool) {
	if lastActivityDate != nil && *lastActivityDate == today {
		return current, false
	}
	if lastActivityDate != nil && *lastActivityDate == yesterday {
		return current + 1, true
	}
	return 1, true
}

func (s *streakService) Touch(ctx context.Context, userId uuid.UUID) (*dto.StreakResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	today := dayKey(now)
	yesterday := dayKey(now.AddDate(0, 0, -1))

	newCount, changed := applyStreakTouch(user.StreakCount, user.LastActivityDate, today, yesterday)
	if changed {
		if err := repo.UpdateStreak(ctx, userId, newCount, today); err != nil {
			return nil, err
		}
		s.log.Info("streak", "streak updated", map[string]interface{}{
			"user":   userId.String(),
			"streak": newCount,
		})
	}

	return &dto.StreakResponse{
		StreakCount:      newCount,
		LastActivityDate: today,
		Extended:         changed,
	}, nil
}

func (s *streakService) DecaySweep(ctx context.Context, now time.Time) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	yesterday := dayKey(now.AddDate(0, 0, -1))

	affected, err := uow.UserRepository().ResetStaleStreaks(ctx, yesterday)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.log.Info("streak", "stale streaks reset", map[string]interface{}{
			"count":  affected,
			"cutoff": yesterday,
		})
	}
	return affected, nil
}
