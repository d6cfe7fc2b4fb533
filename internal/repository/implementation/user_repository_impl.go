package implementation

import (
	"context"
	"errors"

	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/mapper"
	"mathtutor-be/internal/model"
	"mathtutor-be/internal/repository/contract"
	"mathtutor-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var models []*model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.User, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepositoryImpl) UpdateStreak(ctx context.Context, id uuid.UUID, streakCount int, lastActivityDate string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"streak_count":       streakCount,
			"last_activity_date": lastActivityDate,
		}).Error
}

func (r *UserRepositoryImpl) ResetStaleStreaks(ctx context.Context, cutoffDate string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("(streak_count > 0 AND last_activity_date IS NULL) OR last_activity_date < ?", cutoffDate).
		Updates(map[string]interface{}{
			"streak_count":       0,
			"last_activity_date": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *UserRepositoryImpl) SetPlan(ctx context.Context, id uuid.UUID, plan contract.PlanUpdate) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_pro":             plan.IsPro,
			"plan_product_id":    plan.PlanProductId,
			"subscription_id":    plan.SubscriptionId,
			"customer_id":        plan.CustomerId,
			"current_period_end": plan.CurrentPeriodEnd,
		}).Error
}

func (r *UserRepositoryImpl) FindBySubscriptionId(ctx context.Context, subscriptionId string) (*entity.User, error) {
	return r.FindOne(ctx, specification.Filter("subscription_id", subscriptionId))
}
