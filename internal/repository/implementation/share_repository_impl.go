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

type ShareRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ShareMapper
}

func NewShareRepository(db *gorm.DB) contract.ShareRepository {
	return &ShareRepositoryImpl{
		db:     db,
		mapper: mapper.NewShareMapper(),
	}
}

func (r *ShareRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ShareRepositoryImpl) Create(ctx context.Context, record *entity.ShareRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *ShareRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ShareRecord, error) {
	var m model.ShareRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ShareRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ShareRecord, error) {
	var models []*model.ShareRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ShareRepositoryImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).Model(&model.ShareRecord{}).
		Where("id = ?", id).
		Update("active", active).Error
}

func (r *ShareRepositoryImpl) DeactivateByItem(ctx context.Context, kind string, itemId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ShareRecord{}).
		Where("item_kind = ? AND item_id = ?", kind, itemId).
		Update("active", false).Error
}
