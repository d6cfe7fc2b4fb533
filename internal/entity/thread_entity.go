package entity

import (
	"time"

	"github.com/google/uuid"
)

// Thread owns an ordered message log. MessageCount mirrors the number of
// persisted messages; message order values are assigned from it before it
// is incremented, so the per-thread sequence is dense and gap-free.
type Thread struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Title        string
	MessageCount int
	Bookmarked   bool
	Tags         []string
	Preview      string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}

// MessagePart is one element of a message's content. Type is "text" or
// "tool".
type MessagePart struct {
	Type string `json:"type"`

	Text string `json:"text,omitempty"`

	ToolName     string                 `json:"tool_name,omitempty"`
	ToolCallId   string                 `json:"tool_call_id,omitempty"`
	ToolStatus   string                 `json:"tool_status,omitempty"` // ok | error | limit_reached
	ArtifactKind string                 `json:"artifact_kind,omitempty"`
	ArtifactId   *uuid.UUID             `json:"artifact_id,omitempty"`
	Result       map[string]interface{} `json:"result,omitempty"`
}

// Message is immutable once persisted; the assistant reply is assembled
// in memory during streaming and written in one insert.
type Message struct {
	Id        uuid.UUID
	ThreadId  uuid.UUID
	Role      string
	Parts     []MessagePart
	Order     int
	CreatedAt time.Time
}
