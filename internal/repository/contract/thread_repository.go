package contract

import (
	"context"

	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ThreadRepository interface {
	Create(ctx context.Context, thread *entity.Thread) error
	Update(ctx context.Context, thread *entity.Thread) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thread, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Thread, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// IncrementMessageCount bumps the denormalized counter by one in the store.
	IncrementMessageCount(ctx context.Context, id uuid.UUID) error
	// SetMessageCount overwrites the counter, used when reconciling against
	// the actual message rows.
	SetMessageCount(ctx context.Context, id uuid.UUID, count int) error
	// UpdateTitle patches title and preview without racing other columns.
	UpdateTitle(ctx context.Context, id uuid.UUID, title string, preview string) error
}
