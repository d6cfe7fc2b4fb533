package mapper

import (
	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/model"
)

type ShareMapper struct{}

func NewShareMapper() *ShareMapper {
	return &ShareMapper{}
}

func (m *ShareMapper) ToEntity(s *model.ShareRecord) *entity.ShareRecord {
	if s == nil {
		return nil
	}

	return &entity.ShareRecord{
		Id:        s.Id,
		ItemKind:  entity.ShareKind(s.ItemKind),
		ItemId:    s.ItemId,
		UserId:    s.UserId,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ShareMapper) ToModel(s *entity.ShareRecord) *model.ShareRecord {
	if s == nil {
		return nil
	}

	return &model.ShareRecord{
		Id:        s.Id,
		ItemKind:  string(s.ItemKind),
		ItemId:    s.ItemId,
		UserId:    s.UserId,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ShareMapper) ToEntities(records []*model.ShareRecord) []*entity.ShareRecord {
	entities := make([]*entity.ShareRecord, len(records))
	for i, s := range records {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
