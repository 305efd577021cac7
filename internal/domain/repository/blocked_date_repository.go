package repository

import (
	"vetcare-booking/internal/domain/entity"

	"gorm.io/gorm"
)

// BlockedDateRepository persists the singleton blocked-date record.
// Get returns (nil, nil) when the row was never written; callers treat that
// as an empty set. Save writes the full set back (last-writer-wins, see the
// entity doc for the convergence argument).
type BlockedDateRepository interface {
	Get(db *gorm.DB) (*entity.BlockedDateCalendar, error)
	Save(db *gorm.DB, cal *entity.BlockedDateCalendar) error
}
