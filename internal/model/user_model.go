package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalId       string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email            string    `gorm:"type:varchar(255);index;not null"`
	FullName         string    `gorm:"type:varchar(255)"`
	IsPro            bool      `gorm:"default:false"`
	PlanProductId    *string   `gorm:"type:varchar(255)"`
	SubscriptionId   *string   `gorm:"type:varchar(255);index"`
	CustomerId       *string   `gorm:"type:varchar(255)"`
	CurrentPeriodEnd *time.Time
	StreakCount      int     `gorm:"default:0;not null"`
	LastActivityDate *string `gorm:"type:varchar(10);index"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
