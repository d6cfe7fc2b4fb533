package contract

import (
	"context"

	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UsageRepository interface {
	// IncrementAndGet bumps the counter for (userId, date, feature) by one,
	// creating the row when absent, and returns the post-increment count.
	// The upsert is a single statement so concurrent calls never lose updates.
	IncrementAndGet(ctx context.Context, userId uuid.UUID, date string, feature string) (int, error)
	GetCount(ctx context.Context, userId uuid.UUID, date string, feature string) (int, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UsageCounter, error)
	// DeleteOlderThan removes counters whose usage_date sorts before the
	// given YYYY-MM-DD date. Returns the affected row count.
	DeleteOlderThan(ctx context.Context, date string) (int64, error)
}
