package entity

import (
	"time"

	"github.com/google/uuid"
)

// ShareKind tags which table the shared item lives in. Threads and every
// artifact kind share through the same registry.
type ShareKind string

const (
	ShareKindThread       ShareKind = "thread"
	ShareKindGraph        ShareKind = "graph"
	ShareKindFlashcardSet ShareKind = "flashcard_set"
	ShareKindSolution     ShareKind = "solution"
	ShareKindPracticeTest ShareKind = "practice_test"
)

func ParseShareKind(s string) (ShareKind, bool) {
	switch ShareKind(s) {
	case ShareKindThread, ShareKindGraph, ShareKindFlashcardSet, ShareKindSolution, ShareKindPracticeTest:
		return ShareKind(s), true
	}
	return "", false
}

// ShareRecord is the single source of truth for public visibility.
// At most one record exists per (ItemKind, ItemId); share/unshare only
// flips Active so external links stay stable across re-shares.
type ShareRecord struct {
	Id        uuid.UUID
	ItemKind  ShareKind
	ItemId    uuid.UUID
	UserId    uuid.UUID
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
