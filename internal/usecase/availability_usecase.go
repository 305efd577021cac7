package usecase

import (
	"context"
	"errors"
	"time"

	"vetcare-booking/internal/converter"
	"vetcare-booking/internal/delivery/dto"
	"vetcare-booking/internal/domain/entity"
	"vetcare-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidFecha = errors.New("invalid fecha format, use YYYY-MM-DD")
)

type AvailabilityUsecase interface {
	GetDayAvailability(ctx context.Context, fecha string) (*dto.AvailabilityResponse, error)
	GetDaySummary(ctx context.Context, fecha string) (*dto.OccupancyResponse, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	turnoRepo       repository.AppointmentRepository
	blockedDateRepo repository.BlockedDateRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	turnoRepo repository.AppointmentRepository,
	blockedDateRepo repository.BlockedDateRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:              db,
		log:             log,
		turnoRepo:       turnoRepo,
		blockedDateRepo: blockedDateRepo,
	}
}

// GetDayAvailability snapshots the blocked-date set and the day's turnos and
// derives the free slots from them. Holds no state of its own: calling it
// twice against unchanged data yields the same answer.
func (u *availabilityUsecase) GetDayAvailability(ctx context.Context, fecha string) (*dto.AvailabilityResponse, error) {
	day, err := time.Parse(entity.DateFormat, fecha)
	if err != nil {
		return nil, ErrInvalidFecha
	}

	blocked, turnos, err := u.snapshotDay(ctx, day)
	if err != nil {
		return nil, err
	}

	horarios := entity.AvailableHours(day, blocked, turnos)
	return &dto.AvailabilityResponse{
		Fecha:      fecha,
		Disponible: len(horarios) > 0,
		Horarios:   horarios,
	}, nil
}

// GetDaySummary derives per-estado counts and the load bucket for one date.
func (u *availabilityUsecase) GetDaySummary(ctx context.Context, fecha string) (*dto.OccupancyResponse, error) {
	day, err := time.Parse(entity.DateFormat, fecha)
	if err != nil {
		return nil, ErrInvalidFecha
	}

	turnos, err := u.turnoRepo.FindByFecha(u.db.WithContext(ctx), day)
	if err != nil {
		u.log.Warnf("Failed to find turnos for %s: %+v", fecha, err)
		return nil, err
	}

	return converter.OccupancyToResponse(entity.SummarizeDay(day, turnos)), nil
}

func (u *availabilityUsecase) snapshotDay(ctx context.Context, day time.Time) (entity.DateSet, []entity.Appointment, error) {
	cal, err := u.blockedDateRepo.Get(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load blocked dates: %+v", err)
		return nil, nil, err
	}
	blocked := entity.DateSet{}
	if cal != nil {
		blocked = cal.Fechas
	}

	turnos, err := u.turnoRepo.FindByFecha(u.db.WithContext(ctx), day)
	if err != nil {
		u.log.Warnf("Failed to find turnos for %s: %+v", entity.DateKey(day), err)
		return nil, nil, err
	}

	return blocked, turnos, nil
}
