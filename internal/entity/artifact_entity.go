package entity

import (
	"time"

	"github.com/google/uuid"
)

type ArtifactKind string

const (
	ArtifactKindGraph        ArtifactKind = "graph"
	ArtifactKindFlashcardSet ArtifactKind = "flashcard_set"
	ArtifactKindSolution     ArtifactKind = "solution"
	ArtifactKindPracticeTest ArtifactKind = "practice_test"
)

type GraphPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GraphSeries holds the sampled points for one expression. Points where
// the expression is undefined are simply omitted.
type GraphSeries struct {
	Expression string       `json:"expression"`
	Points     []GraphPoint `json:"points"`
}

type GraphArtifact struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	ThreadId  uuid.UUID
	MessageId *uuid.UUID
	Title     string
	XMin      float64
	XMax      float64
	Series    []GraphSeries
	Tags      []string
	CreatedAt time.Time
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
	Hint  string `json:"hint,omitempty"`
}

// FlashcardSet carries study progress mutated only by explicit progress
// updates, never by generation.
type FlashcardSet struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	ThreadId      uuid.UUID
	MessageId     *uuid.UUID
	Title         string
	Topic         string
	Cards         []Flashcard
	Tags          []string
	MasteryScore  float64
	AttemptCount  int
	LastStudiedAt *time.Time
	CreatedAt     time.Time
}

type SolutionStep struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	Expression  string `json:"expression,omitempty"`
}

type Solution struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	ThreadId  uuid.UUID
	MessageId *uuid.UUID
	Problem   string
	Steps     []SolutionStep
	Answer    string
	Tags      []string
	CreatedAt time.Time
}

type PracticeQuestion struct {
	Prompt       string   `json:"prompt"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

type PracticeTest struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	ThreadId      uuid.UUID
	MessageId     *uuid.UUID
	Title         string
	Topic         string
	Questions     []PracticeQuestion
	Tags          []string
	MasteryScore  float64
	AttemptCount  int
	LastStudiedAt *time.Time
	CreatedAt     time.Time
}
