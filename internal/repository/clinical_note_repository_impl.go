package repository

import (
	"errors"

	"vetcare-booking/internal/domain/entity"
	domainRepo "vetcare-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clinicalNoteRepository struct{}

func NewClinicalNoteRepository() domainRepo.ClinicalNoteRepository {
	return &clinicalNoteRepository{}
}

func (r *clinicalNoteRepository) Create(db *gorm.DB, note *entity.ClinicalNote) error {
	return db.Create(note).Error
}

func (r *clinicalNoteRepository) Update(db *gorm.DB, note *entity.ClinicalNote) error {
	return db.Save(note).Error
}

func (r *clinicalNoteRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ClinicalNote, error) {
	var note entity.ClinicalNote
	err := db.Where("id = ?", id).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *clinicalNoteRepository) FindByMascotaID(db *gorm.DB, mascotaID uuid.UUID) ([]entity.ClinicalNote, error) {
	var notes []entity.ClinicalNote
	err := db.Where("mascota_id = ?", mascotaID).
		Order("fecha_atencion DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}
