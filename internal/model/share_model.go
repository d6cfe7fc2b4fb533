package model

import (
	"time"

	"github.com/google/uuid"
)

// At most one ShareRecord exists per (item_kind, item_id).
type ShareRecord struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemKind  string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_share_records_item,priority:1"`
	ItemId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_share_records_item,priority:2"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Active    bool      `gorm:"default:true;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ShareRecord) TableName() string {
	return "share_records"
}
