package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is keyed internally by uuid but looked up by the identity
// provider's external id. Created on first sign-in or first billing
// event, whichever happens first; never hard-deleted.
type User struct {
	Id         uuid.UUID
	ExternalId string
	Email      string
	FullName   string

	// Plan state, set absolutely by billing webhook handlers.
	IsPro            bool
	PlanProductId    *string
	SubscriptionId   *string
	CustomerId       *string
	CurrentPeriodEnd *time.Time

	// Streak state. LastActivityDate is a UTC calendar date (YYYY-MM-DD),
	// nil when the user has no live streak.
	StreakCount      int
	LastActivityDate *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) PlanId() string {
	if u.IsPro {
		return "pro"
	}
	return "free"
}
