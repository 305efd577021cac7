package repository

import (
	"vetcare-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(db *gorm.DB, client *entity.Client) error
	Update(db *gorm.DB, client *entity.Client) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Client, error)
	FindByDNI(db *gorm.DB, dni string) (*entity.Client, error)
	FindByDNIWithPets(db *gorm.DB, dni string) (*entity.Client, error)
}
