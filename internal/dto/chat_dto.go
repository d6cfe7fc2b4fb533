package dto

import "github.com/google/uuid"

type ChatStreamRequest struct {
	ThreadId uuid.UUID
	Content  string `json:"content" validate:"required"`
}

// GenerateTitleMessage is the in-process job payload queued after the first
// exchange of a thread.
type GenerateTitleMessage struct {
	ThreadId uuid.UUID `json:"thread_id"`
}
