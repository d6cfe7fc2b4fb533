package dto

import (
	"time"

	"github.com/google/uuid"

	"mathtutor-be/internal/entity"
)

type GraphResponse struct {
	Id        uuid.UUID            `json:"id"`
	ThreadId  uuid.UUID            `json:"thread_id"`
	Title     string               `json:"title"`
	XMin      float64              `json:"x_min"`
	XMax      float64              `json:"x_max"`
	Series    []entity.GraphSeries `json:"series"`
	Tags      []string             `json:"tags"`
	CreatedAt time.Time            `json:"created_at"`
}

type FlashcardSetResponse struct {
	Id            uuid.UUID          `json:"id"`
	ThreadId      uuid.UUID          `json:"thread_id"`
	Title         string             `json:"title"`
	Topic         string             `json:"topic"`
	Cards         []entity.Flashcard `json:"cards"`
	Tags          []string           `json:"tags"`
	MasteryScore  float64            `json:"mastery_score"`
	AttemptCount  int                `json:"attempt_count"`
	LastStudiedAt *time.Time         `json:"last_studied_at"`
	CreatedAt     time.Time          `json:"created_at"`
}

type SolutionResponse struct {
	Id        uuid.UUID             `json:"id"`
	ThreadId  uuid.UUID             `json:"thread_id"`
	Problem   string                `json:"problem"`
	Steps     []entity.SolutionStep `json:"steps"`
	Answer    string                `json:"answer"`
	Tags      []string              `json:"tags"`
	CreatedAt time.Time             `json:"created_at"`
}

type PracticeTestResponse struct {
	Id            uuid.UUID                 `json:"id"`
	ThreadId      uuid.UUID                 `json:"thread_id"`
	Title         string                    `json:"title"`
	Topic         string                    `json:"topic"`
	Questions     []entity.PracticeQuestion `json:"questions"`
	Tags          []string                  `json:"tags"`
	MasteryScore  float64                   `json:"mastery_score"`
	AttemptCount  int                       `json:"attempt_count"`
	LastStudiedAt *time.Time                `json:"last_studied_at"`
	CreatedAt     time.Time                 `json:"created_at"`
}

type UpdateProgressRequest struct {
	Id           uuid.UUID
	MasteryScore float64 `json:"mastery_score" validate:"min=0,max=100"`
}
