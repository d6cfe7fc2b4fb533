package dto

import (
	"time"

	"github.com/google/uuid"
)

type ShareRequest struct {
	ItemKind string    `json:"item_kind" validate:"required"`
	ItemId   uuid.UUID `json:"item_id" validate:"required"`
}

type ShareResponse struct {
	ShareId uuid.UUID `json:"share_id"`
	Active  bool      `json:"active"`
}

type UnshareRequest struct {
	ItemKind string    `json:"item_kind" validate:"required"`
	ItemId   uuid.UUID `json:"item_id" validate:"required"`
}

// UnshareResponse reports whether a live share was actually deactivated.
// Unshared is false when the item was never shared or already inactive.
type UnshareResponse struct {
	Unshared bool `json:"unshared"`
}

type ResolveShareResponse struct {
	ItemKind string      `json:"item_kind"`
	SharedAt time.Time   `json:"shared_at"`
	Item     interface{} `json:"item"`
}
