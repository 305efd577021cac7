package repository

import (
	"errors"

	"vetcare-booking/internal/domain/entity"
	domainRepo "vetcare-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type petRepository struct{}

func NewPetRepository() domainRepo.PetRepository {
	return &petRepository{}
}

func (r *petRepository) Create(db *gorm.DB, pet *entity.Pet) error {
	return db.Create(pet).Error
}

func (r *petRepository) Update(db *gorm.DB, pet *entity.Pet) error {
	return db.Omit("Cliente", "Historia").Save(pet).Error
}

func (r *petRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Pet, error) {
	var pet entity.Pet
	err := db.Where("id = ?", id).First(&pet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) FindByClienteID(db *gorm.DB, clienteID uuid.UUID) ([]entity.Pet, error) {
	var pets []entity.Pet
	err := db.Where("cliente_id = ?", clienteID).Order("created_at ASC").Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}
