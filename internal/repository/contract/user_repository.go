package contract

import (
	"context"
	"time"

	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PlanUpdate struct {
	IsPro            bool
	PlanProductId    *string
	SubscriptionId   *string
	CustomerId       *string
	CurrentPeriodEnd *time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UpdateStreak overwrites streak bookkeeping without touching profile fields.
	UpdateStreak(ctx context.Context, id uuid.UUID, streakCount int, lastActivityDate string) error
	// ResetStaleStreaks zeroes the streak and clears the activity date of
	// every user whose last activity is older than cutoffDate (YYYY-MM-DD).
	// Returns the affected row count.
	ResetStaleStreaks(ctx context.Context, cutoffDate string) (int64, error)
	// SetPlan overwrites the full billing state of a user.
	SetPlan(ctx context.Context, id uuid.UUID, plan PlanUpdate) error
	FindBySubscriptionId(ctx context.Context, subscriptionId string) (*entity.User, error)
}
