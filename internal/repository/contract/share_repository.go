package contract

import (
	"context"

	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ShareRepository interface {
	// Create inserts a new share record. When a record for the same
	// (item_kind, item_id) already exists it returns gorm.ErrDuplicatedKey.
	Create(ctx context.Context, record *entity.ShareRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ShareRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ShareRecord, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// DeactivateByItem flips the record for one item to inactive, if present.
	DeactivateByItem(ctx context.Context, kind string, itemId uuid.UUID) error
}
