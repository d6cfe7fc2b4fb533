package entity

import (
	"time"

	"github.com/google/uuid"
)

// UsageCounter is one row per user per UTC calendar day per feature.
// Daily reset is implicit: a new day creates a new row, old rows are
// pruned by the retention sweep.
type UsageCounter struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	UsageDate string // YYYY-MM-DD, UTC
	Feature   string
	Count     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
