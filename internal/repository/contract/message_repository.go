package contract

import (
	"context"

	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// MaxOrder returns the highest order value in a thread, or -1 when the
	// thread has no messages.
	MaxOrder(ctx context.Context, threadId uuid.UUID) (int, error)
}
