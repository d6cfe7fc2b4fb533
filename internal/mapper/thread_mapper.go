package mapper

import (
	"time"

	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/model"

	"gorm.io/gorm"
)

type ThreadMapper struct{}

func NewThreadMapper() *ThreadMapper {
	return &ThreadMapper{}
}

func (m *ThreadMapper) ToEntity(t *model.Thread) *entity.Thread {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		dt := t.DeletedAt.Time
		deletedAt = &dt
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ut := t.UpdatedAt
		updatedAt = &ut
	}

	var tags []string
	fromJSON(t.Tags, &tags)

	return &entity.Thread{
		Id:           t.Id,
		UserId:       t.UserId,
		Title:        t.Title,
		MessageCount: t.MessageCount,
		Bookmarked:   t.Bookmarked,
		Tags:         tags,
		Preview:      t.Preview,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    t.DeletedAt.Valid,
	}
}

func (m *ThreadMapper) ToModel(t *entity.Thread) *model.Thread {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Thread{
		Id:           t.Id,
		UserId:       t.UserId,
		Title:        t.Title,
		MessageCount: t.MessageCount,
		Bookmarked:   t.Bookmarked,
		Tags:         toJSON(t.Tags),
		Preview:      t.Preview,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}
}

func (m *ThreadMapper) ToEntities(threads []*model.Thread) []*entity.Thread {
	entities := make([]*entity.Thread, len(threads))
	for i, t := range threads {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var parts []entity.MessagePart
	fromJSON(msg.Parts, &parts)

	return &entity.Message{
		Id:        msg.Id,
		ThreadId:  msg.ThreadId,
		Role:      msg.Role,
		Parts:     parts,
		Order:     msg.Ord,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	return &model.Message{
		Id:        msg.Id,
		ThreadId:  msg.ThreadId,
		Role:      msg.Role,
		Parts:     toJSON(msg.Parts),
		Ord:       msg.Order,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
