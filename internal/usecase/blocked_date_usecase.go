package usecase

import (
	"context"
	"errors"
	"time"

	"vetcare-booking/internal/delivery/dto"
	"vetcare-booking/internal/domain/entity"
	"vetcare-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidRange = errors.New("fecha_fin precedes fecha_inicio")
	ErrEmptyRequest = errors.New("either fecha or fecha_inicio/fecha_fin is required")
)

// BlockedDateUsecase manages the administratively blocked calendar dates.
// Every operation is read-modify-write over the singleton set: read the full
// set, apply an idempotent union or difference, write the full set back.
// Two admin sessions saving at once resolve as last-writer-wins on the whole
// set; because the operations commute, replaying either edit converges.
type BlockedDateUsecase interface {
	GetBlockedDates(ctx context.Context) (*dto.BlockedDatesResponse, error)
	BlockDates(ctx context.Context, req *dto.BlockDatesRequest) (*dto.BlockedDatesResponse, error)
	UnblockDates(ctx context.Context, req *dto.BlockDatesRequest) (*dto.BlockedDatesResponse, error)
}

type blockedDateUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	blockedDateRepo repository.BlockedDateRepository
}

func NewBlockedDateUsecase(db *gorm.DB, log *logrus.Logger, blockedDateRepo repository.BlockedDateRepository) BlockedDateUsecase {
	return &blockedDateUsecase{
		db:              db,
		log:             log,
		blockedDateRepo: blockedDateRepo,
	}
}

func (u *blockedDateUsecase) GetBlockedDates(ctx context.Context) (*dto.BlockedDatesResponse, error) {
	cal, err := u.loadCalendar(ctx, u.db)
	if err != nil {
		return nil, err
	}
	return calendarToResponse(cal), nil
}

// BlockDates adds a single date or an inclusive range to the blocked set.
// Blocking an already-blocked date is a no-op, so the operation is safe to
// retry.
func (u *blockedDateUsecase) BlockDates(ctx context.Context, req *dto.BlockDatesRequest) (*dto.BlockedDatesResponse, error) {
	return u.mutate(ctx, req, func(set entity.DateSet, dates []string) {
		set.Add(dates...)
	})
}

// UnblockDates removes a single date or an inclusive range from the blocked
// set. Unblocking a never-blocked date is a no-op.
func (u *blockedDateUsecase) UnblockDates(ctx context.Context, req *dto.BlockDatesRequest) (*dto.BlockedDatesResponse, error) {
	return u.mutate(ctx, req, func(set entity.DateSet, dates []string) {
		set.Remove(dates...)
	})
}

func (u *blockedDateUsecase) mutate(ctx context.Context, req *dto.BlockDatesRequest, apply func(entity.DateSet, []string)) (*dto.BlockedDatesResponse, error) {
	dates, err := expandRequest(req)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	cal, err := u.loadCalendar(ctx, tx)
	if err != nil {
		return nil, err
	}

	apply(cal.Fechas, dates)
	cal.Version++

	if err := u.blockedDateRepo.Save(tx, cal); err != nil {
		u.log.Warnf("Failed to save blocked dates: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Blocked-date set updated: %d date(s) in request, %d total, version=%d", len(dates), len(cal.Fechas), cal.Version)
	return calendarToResponse(cal), nil
}

func (u *blockedDateUsecase) loadCalendar(ctx context.Context, db *gorm.DB) (*entity.BlockedDateCalendar, error) {
	cal, err := u.blockedDateRepo.Get(db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load blocked dates: %+v", err)
		return nil, err
	}
	if cal == nil {
		cal = &entity.BlockedDateCalendar{
			ID:     entity.BlockedDateCalendarID,
			Fechas: entity.DateSet{},
		}
	}
	if cal.Fechas == nil {
		cal.Fechas = entity.DateSet{}
	}
	return cal, nil
}

// expandRequest turns the request into the explicit list of dates to apply.
func expandRequest(req *dto.BlockDatesRequest) ([]string, error) {
	if req.Fecha != "" {
		if _, err := time.Parse(entity.DateFormat, req.Fecha); err != nil {
			return nil, ErrInvalidFecha
		}
		return []string{req.Fecha}, nil
	}

	if req.FechaInicio == "" || req.FechaFin == "" {
		return nil, ErrEmptyRequest
	}

	start, err := time.Parse(entity.DateFormat, req.FechaInicio)
	if err != nil {
		return nil, ErrInvalidFecha
	}
	end, err := time.Parse(entity.DateFormat, req.FechaFin)
	if err != nil {
		return nil, ErrInvalidFecha
	}

	dates, err := entity.ExpandRange(start, end)
	if err != nil {
		return nil, ErrInvalidRange
	}
	return dates, nil
}

func calendarToResponse(cal *entity.BlockedDateCalendar) *dto.BlockedDatesResponse {
	fechas := cal.Fechas.Sorted()
	return &dto.BlockedDatesResponse{
		Fechas:  fechas,
		Total:   len(fechas),
		Version: cal.Version,
	}
}
