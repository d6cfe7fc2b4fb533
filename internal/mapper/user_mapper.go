package mapper

import (
	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	return &entity.User{
		Id:               u.Id,
		ExternalId:       u.ExternalId,
		Email:            u.Email,
		FullName:         u.FullName,
		IsPro:            u.IsPro,
		PlanProductId:    u.PlanProductId,
		SubscriptionId:   u.SubscriptionId,
		CustomerId:       u.CustomerId,
		CurrentPeriodEnd: u.CurrentPeriodEnd,
		StreakCount:      u.StreakCount,
		LastActivityDate: u.LastActivityDate,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	return &model.User{
		Id:               u.Id,
		ExternalId:       u.ExternalId,
		Email:            u.Email,
		FullName:         u.FullName,
		IsPro:            u.IsPro,
		PlanProductId:    u.PlanProductId,
		SubscriptionId:   u.SubscriptionId,
		CustomerId:       u.CustomerId,
		CurrentPeriodEnd: u.CurrentPeriodEnd,
		StreakCount:      u.StreakCount,
		LastActivityDate: u.LastActivityDate,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
