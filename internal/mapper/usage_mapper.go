package mapper

import (
	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/model"
)

type UsageMapper struct{}

func NewUsageMapper() *UsageMapper {
	return &UsageMapper{}
}

func (m *UsageMapper) ToEntity(c *model.UsageCounter) *entity.UsageCounter {
	if c == nil {
		return nil
	}

	return &entity.UsageCounter{
		Id:        c.Id,
		UserId:    c.UserId,
		UsageDate: c.UsageDate,
		Feature:   c.Feature,
		Count:     c.Count,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *UsageMapper) ToModel(c *entity.UsageCounter) *model.UsageCounter {
	if c == nil {
		return nil
	}

	return &model.UsageCounter{
		Id:        c.Id,
		UserId:    c.UserId,
		UsageDate: c.UsageDate,
		Feature:   c.Feature,
		Count:     c.Count,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *UsageMapper) ToEntities(counters []*model.UsageCounter) []*entity.UsageCounter {
	entities := make([]*entity.UsageCounter, len(counters))
	for i, c := range counters {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
