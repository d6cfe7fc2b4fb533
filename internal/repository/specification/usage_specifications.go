package specification

import "gorm.io/gorm"

// ByUsageDate matches counters for one UTC day (YYYY-MM-DD)
type ByUsageDate struct {
	Date string
}

func (s ByUsageDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("usage_date = ?", s.Date)
}
