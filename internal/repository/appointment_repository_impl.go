package repository

import (
	"errors"
	"time"

	"vetcare-booking/internal/domain/entity"
	domainRepo "vetcare-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, turno *entity.Appointment) error {
	return db.Create(turno).Error
}

func (r *appointmentRepository) Update(db *gorm.DB, turno *entity.Appointment) error {
	return db.Save(turno).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var turno entity.Appointment
	err := db.Where("id = ?", id).First(&turno).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &turno, nil
}

func (r *appointmentRepository) FindByFecha(db *gorm.DB, fecha time.Time) ([]entity.Appointment, error) {
	var turnos []entity.Appointment
	err := db.Where("fecha = ?", entity.DateKey(fecha)).
		Order("hora ASC").
		Find(&turnos).Error
	if err != nil {
		return nil, err
	}
	return turnos, nil
}

func (r *appointmentRepository) FindActiveByFecha(db *gorm.DB, fecha time.Time) ([]entity.Appointment, error) {
	var turnos []entity.Appointment
	err := db.Where("fecha = ? AND estado != ?", entity.DateKey(fecha), entity.StatusCancelado).
		Order("hora ASC").
		Find(&turnos).Error
	if err != nil {
		return nil, err
	}
	return turnos, nil
}

func (r *appointmentRepository) FindByMascotaID(db *gorm.DB, mascotaID uuid.UUID) ([]entity.Appointment, error) {
	var turnos []entity.Appointment
	err := db.Where("mascota_id = ?", mascotaID).
		Order("fecha DESC, hora DESC").
		Find(&turnos).Error
	if err != nil {
		return nil, err
	}
	return turnos, nil
}

// FindBySnapshotName matches legacy turnos that never got a mascota foreign
// key, by case-insensitive trimmed snapshot name.
func (r *appointmentRepository) FindBySnapshotName(db *gorm.DB, nombreMascota string) ([]entity.Appointment, error) {
	var turnos []entity.Appointment
	err := db.Where("mascota_id = ? AND LOWER(TRIM(nombre_mascota)) = ?", uuid.Nil, entity.NormalizePetName(nombreMascota)).
		Order("fecha DESC, hora DESC").
		Find(&turnos).Error
	if err != nil {
		return nil, err
	}
	return turnos, nil
}

func (r *appointmentRepository) FindActiveFromFecha(db *gorm.DB, fecha time.Time) ([]entity.Appointment, error) {
	var turnos []entity.Appointment
	err := db.Where("fecha >= ? AND estado != ?", entity.DateKey(fecha), entity.StatusCancelado).
		Order("fecha ASC, hora ASC").
		Find(&turnos).Error
	if err != nil {
		return nil, err
	}
	return turnos, nil
}

// UpdateEstado atomically transitions estado ONLY while the turno is still in
// the from state. Returns affected rows: 1 = success, 0 = lost the race.
func (r *appointmentRepository) UpdateEstado(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND estado = ?", id, from).
		Update("estado", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
