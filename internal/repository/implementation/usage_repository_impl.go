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

type UsageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UsageMapper
}

func NewUsageRepository(db *gorm.DB) contract.UsageRepository {
	return &UsageRepositoryImpl{
		db:     db,
		mapper: mapper.NewUsageMapper(),
	}
}

func (r *UsageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UsageRepositoryImpl) IncrementAndGet(ctx context.Context, userId uuid.UUID, date string, feature string) (int, error) {
	var count int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO usage_counters (id, user_id, usage_date, feature, count, created_at, updated_at)
		VALUES (gen_random_uuid(), ?, ?, ?, 1, NOW(), NOW())
		ON CONFLICT (user_id, usage_date, feature)
		DO UPDATE SET count = usage_counters.count + 1, updated_at = NOW()
		RETURNING count`,
		userId, date, feature,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UsageRepositoryImpl) GetCount(ctx context.Context, userId uuid.UUID, date string, feature string) (int, error) {
	var m model.UsageCounter
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND usage_date = ? AND feature = ?", userId, date, feature).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return m.Count, nil
}

func (r *UsageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UsageCounter, error) {
	var models []*model.UsageCounter
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *UsageRepositoryImpl) DeleteOlderThan(ctx context.Context, date string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("usage_date < ?", date).
		Delete(&model.UsageCounter{})
	return result.RowsAffected, result.Error
}
