package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByItem matches a share record by the item it points at
type ByItem struct {
	Kind   string
	ItemId uuid.UUID
}

func (s ByItem) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("item_kind = ? AND item_id = ?", s.Kind, s.ItemId)
}

// ActiveOnly keeps only live share records
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}
