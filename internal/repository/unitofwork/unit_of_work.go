package unitofwork

import (
	"context"

	"mathtutor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ThreadRepository() contract.ThreadRepository
	MessageRepository() contract.MessageRepository
	ArtifactRepository() contract.ArtifactRepository
	ShareRepository() contract.ShareRepository
	UsageRepository() contract.UsageRepository
}
