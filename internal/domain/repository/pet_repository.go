package repository

import (
	"vetcare-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PetRepository interface {
	Create(db *gorm.DB, pet *entity.Pet) error
	Update(db *gorm.DB, pet *entity.Pet) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Pet, error)
	FindByClienteID(db *gorm.DB, clienteID uuid.UUID) ([]entity.Pet, error)
}
