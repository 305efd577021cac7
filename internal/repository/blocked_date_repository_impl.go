package repository

import (
	"errors"

	"vetcare-booking/internal/domain/entity"
	domainRepo "vetcare-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type blockedDateRepository struct{}

func NewBlockedDateRepository() domainRepo.BlockedDateRepository {
	return &blockedDateRepository{}
}

func (r *blockedDateRepository) Get(db *gorm.DB) (*entity.BlockedDateCalendar, error) {
	var cal entity.BlockedDateCalendar
	err := db.Where("id = ?", entity.BlockedDateCalendarID).First(&cal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cal, nil
}

func (r *blockedDateRepository) Save(db *gorm.DB, cal *entity.BlockedDateCalendar) error {
	cal.ID = entity.BlockedDateCalendarID
	return db.Save(cal).Error
}
