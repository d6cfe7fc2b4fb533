package service

import (
	"context"
	"time"

	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/repository/specification"
	"mathtutor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	// GetOrCreateByExternalId resolves the local user row for an identity
	// provider subject, provisioning it on first contact.
	GetOrCreateByExternalId(ctx context.Context, externalId string, email string, fullName string) (*entity.User, error)
	GetById(ctx context.Context, userId uuid.UUID) (*entity.User, error)
	Profile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func (s *userService) GetOrCreateByExternalId(ctx context.Context, externalId string, email string, fullName string) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	user, err := repo.FindOne(ctx, specification.Filter("external_id", externalId))
	if err != nil {
		return nil, err
	}
	if user != nil {
		if email != "" && user.Email != email {
			user.Email = email
			if err := repo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}

	user = &entity.User{
		Id:         uuid.New(),
		ExternalId: externalId,
		Email:      email,
		FullName:   fullName,
		CreatedAt:  time.Now(),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetById(ctx context.Context, userId uuid.UUID) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) Profile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	user, err := s.GetById(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &dto.UserProfileResponse{
		Id:               user.Id,
		Email:            user.Email,
		FullName:         user.FullName,
		Plan:             user.PlanId(),
		CurrentPeriodEnd: user.CurrentPeriodEnd,
		StreakCount:      user.StreakCount,
		LastActivityDate: user.LastActivityDate,
		CreatedAt:        user.CreatedAt,
	}, nil
}
