package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	FullName         string     `json:"full_name"`
	Plan             string     `json:"plan"`
	CurrentPeriodEnd *time.Time `json:"current_period_end"`
	StreakCount      int        `json:"streak_count"`
	LastActivityDate *string    `json:"last_activity_date"`
	CreatedAt        time.Time  `json:"created_at"`
}
