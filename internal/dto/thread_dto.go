package dto

import (
	"time"

	"github.com/google/uuid"

	"mathtutor-be/internal/entity"
)

type CreateThreadRequest struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

type CreateThreadResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateThreadRequest struct {
	Id         uuid.UUID
	Title      *string   `json:"title"`
	Bookmarked *bool     `json:"bookmarked"`
	Tags       *[]string `json:"tags"`
}

type ThreadSummary struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	MessageCount int        `json:"message_count"`
	Bookmarked   bool       `json:"bookmarked"`
	Tags         []string   `json:"tags"`
	Preview      string     `json:"preview"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type ListThreadsRequest struct {
	Bookmarked bool `query:"bookmarked"`
	Limit      int  `query:"limit"`
	Offset     int  `query:"offset"`
}

type ShowThreadResponse struct {
	Thread   ThreadSummary     `json:"thread"`
	Messages []MessageResponse `json:"messages"`
}

type MessageResponse struct {
	Id        uuid.UUID            `json:"id"`
	Role      string               `json:"role"`
	Parts     []entity.MessagePart `json:"parts"`
	Order     int                  `json:"order"`
	CreatedAt time.Time            `json:"created_at"`
}

type AppendMessageRequest struct {
	ThreadId uuid.UUID
	// Id lets callers fix the message id ahead of the insert, so artifacts
	// created mid-turn can reference the message that produced them.
	Id    *uuid.UUID           `json:"-"`
	Role  string               `json:"role" validate:"required,oneof=user assistant system"`
	Parts []entity.MessagePart `json:"parts" validate:"required,min=1"`
}

type AppendMessageResponse struct {
	Id    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}
