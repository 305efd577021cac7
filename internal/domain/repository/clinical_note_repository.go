package repository

import (
	"vetcare-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClinicalNoteRepository interface {
	Create(db *gorm.DB, note *entity.ClinicalNote) error
	Update(db *gorm.DB, note *entity.ClinicalNote) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ClinicalNote, error)
	FindByMascotaID(db *gorm.DB, mascotaID uuid.UUID) ([]entity.ClinicalNote, error)
}
