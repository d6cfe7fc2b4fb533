package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Thread struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title        string         `gorm:"type:text;not null"`
	MessageCount int            `gorm:"default:0;not null"`
	Bookmarked   bool           `gorm:"default:false"`
	Tags         datatypes.JSON `gorm:"type:jsonb"`
	Preview      string         `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Thread) TableName() string {
	return "threads"
}

type Message struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ThreadId  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_messages_thread_ord,priority:1"`
	Role      string         `gorm:"type:varchar(50);not null"`
	Parts     datatypes.JSON `gorm:"type:jsonb;not null"`
	Ord       int            `gorm:"column:ord;not null;uniqueIndex:idx_messages_thread_ord,priority:2"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
