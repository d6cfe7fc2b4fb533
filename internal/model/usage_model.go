package model

import (
	"time"

	"github.com/google/uuid"
)

type UsageCounter struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usage_counters_key,priority:1"`
	UsageDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_usage_counters_key,priority:2;index"`
	Feature   string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_usage_counters_key,priority:3"`
	Count     int       `gorm:"default:0;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UsageCounter) TableName() string {
	return "usage_counters"
}
