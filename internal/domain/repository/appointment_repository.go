package repository

import (
	"time"

	"vetcare-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, turno *entity.Appointment) error
	Update(db *gorm.DB, turno *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByFecha(db *gorm.DB, fecha time.Time) ([]entity.Appointment, error)
	FindActiveByFecha(db *gorm.DB, fecha time.Time) ([]entity.Appointment, error)
	FindByMascotaID(db *gorm.DB, mascotaID uuid.UUID) ([]entity.Appointment, error)
	FindBySnapshotName(db *gorm.DB, nombreMascota string) ([]entity.Appointment, error)
	FindActiveFromFecha(db *gorm.DB, fecha time.Time) ([]entity.Appointment, error)
	// UpdateEstado atomically transitions estado from→to.
	// Returns affected rows: 0 means the turno already left the from state.
	UpdateEstado(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
