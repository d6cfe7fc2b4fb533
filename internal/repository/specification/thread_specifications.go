package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByUserId scopes a query to a single owner
type ByUserId struct {
	UserId uuid.UUID
}

func (s ByUserId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// ByThreadId scopes a query to one thread
type ByThreadId struct {
	ThreadId uuid.UUID
}

func (s ByThreadId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("thread_id = ?", s.ThreadId)
}

// BookmarkedOnly keeps only bookmarked threads
type BookmarkedOnly struct{}

func (s BookmarkedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("bookmarked = ?", true)
}
