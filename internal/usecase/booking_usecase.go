package usecase

import (
	"context"
	"errors"
	"time"

	"vetcare-booking/internal/converter"
	"vetcare-booking/internal/delivery/dto"
	"vetcare-booking/internal/domain/entity"
	"vetcare-booking/internal/domain/repository"
	"vetcare-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrTurnoNotFound    = errors.New("turno not found")
	ErrSlotTaken        = errors.New("the selected slot is no longer free")
	ErrDayUnavailable   = errors.New("the selected date is not open for booking")
	ErrInvalidHora      = errors.New("hora must be an hourly slot between 08:00 and 20:00")
	ErrInvalidServicio  = errors.New("unknown servicio")
	ErrVacunasRequired  = errors.New("vacunas selection is required for this service and species")
	ErrFechaPast        = errors.New("cannot book a past date")
	ErrCancelTooLate    = errors.New("turnos can only be cancelled until the day before the visit")
	ErrTurnoNotPending  = errors.New("turno is not pending")
)

// BookingUsecase coordinates a submission into consistent persisted records:
// identity resolution, a commit-time availability re-check, the turno insert
// and the best-effort notification hand-off.
type BookingUsecase interface {
	CreateTurno(ctx context.Context, req *dto.CreateTurnoRequest) (*dto.TurnoResponse, error)
	CancelTurnoByClient(ctx context.Context, turnoID uuid.UUID) error
	CompleteTurno(ctx context.Context, turnoID uuid.UUID) (*dto.TurnoResponse, error)
	CancelTurnoByAdmin(ctx context.Context, turnoID uuid.UUID) error
	RescheduleTurno(ctx context.Context, turnoID uuid.UUID, req *dto.RescheduleTurnoRequest) (*dto.TurnoResponse, error)
	DeleteTurno(ctx context.Context, turnoID uuid.UUID) error
	GetTurnosByFecha(ctx context.Context, fecha string) (*dto.TurnoListResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	turnoRepo       repository.AppointmentRepository
	blockedDateRepo repository.BlockedDateRepository
	identity        service.IdentityService
	reservations    *service.SlotReservationService
	notifier        service.NotificationService
	calendarSvc     service.CalendarService

	now func() time.Time
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	turnoRepo repository.AppointmentRepository,
	blockedDateRepo repository.BlockedDateRepository,
	identity service.IdentityService,
	reservations *service.SlotReservationService,
	notifier service.NotificationService,
	calendarSvc service.CalendarService,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		turnoRepo:       turnoRepo,
		blockedDateRepo: blockedDateRepo,
		identity:        identity,
		reservations:    reservations,
		notifier:        notifier,
		calendarSvc:     calendarSvc,
		now:             time.Now,
	}
}

// CreateTurno books a home visit.
//
// Flow:
// 1. Validate input (grid hora, known servicio, vacunas rule) before any write
// 2. Resolve client (dedup by DNI) and pet inside one transaction
// 3. Re-check availability against a fresh read — the gap between the form's
//    availability read and this commit is unguarded otherwise
// 4. Place the redis slot hold (atomic, loses cleanly against a racing booking)
// 5. Insert the turno as pendiente with the denormalized snapshot
// 6. If insert/commit fails -> compensate: release the redis hold
// 7. Hand off to the notification and calendar collaborators, best-effort
func (u *bookingUsecase) CreateTurno(ctx context.Context, req *dto.CreateTurnoRequest) (*dto.TurnoResponse, error) {
	// Step 1: validation, before any write
	fecha, err := time.Parse(entity.DateFormat, req.Fecha)
	if err != nil {
		return nil, ErrInvalidFecha
	}
	if !entity.IsValidSlot(req.Hora) {
		return nil, ErrInvalidHora
	}
	servicio := entity.ServiceType(req.Servicio)
	if !entity.IsValidService(servicio) {
		return nil, ErrInvalidServicio
	}

	today := u.now().UTC().Truncate(24 * time.Hour)
	if fecha.Before(today) {
		return nil, ErrFechaPast
	}

	// Vaccine rule with the species as submitted; re-checked below once the
	// pet record is resolved (an existing pet may carry a different species)
	if entity.RequiresVaccineSelection(servicio, req.Mascota.Tipo) && len(req.Vacunas) == 0 {
		return nil, ErrVacunasRequired
	}

	// Steps 2-5 are all-or-nothing
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Step 2: identity resolution
	client, _, err := u.identity.ResolveClient(ctx, tx, service.ClientInput{
		DNI:       req.Cliente.DNI,
		Nombre:    req.Cliente.Nombre,
		Telefono:  req.Cliente.Telefono,
		Email:     req.Cliente.Email,
		Domicilio: req.Cliente.Domicilio,
	})
	if err != nil {
		return nil, err
	}

	pet, err := u.identity.ResolvePet(ctx, tx, client.ID, req.Mascota.ID, service.PetInput{
		Nombre: req.Mascota.Nombre,
		Tipo:   req.Mascota.Tipo,
		Raza:   req.Mascota.Raza,
		Edad:   req.Mascota.Edad,
		Peso:   req.Mascota.Peso,
	})
	if err != nil {
		return nil, err
	}

	if entity.RequiresVaccineSelection(servicio, pet.Tipo) && len(req.Vacunas) == 0 {
		return nil, ErrVacunasRequired
	}

	// Step 3: commit-time availability re-check against a fresh read
	if err := u.recheckSlot(ctx, tx, fecha, req.Hora); err != nil {
		return nil, err
	}

	// Step 4: redis slot hold closes the remaining read-then-write gap
	if err := u.reservations.Reserve(ctx, fecha, req.Hora, client.ID.String()); err != nil {
		if errors.Is(err, service.ErrSlotHeld) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	// Step 5: persist with live foreign keys plus the denormalized snapshot
	turno := &entity.Appointment{
		ClienteID:     client.ID,
		MascotaID:     pet.ID,
		NombreCliente: client.Nombre,
		Telefono:      client.Telefono,
		Email:         client.Email,
		Domicilio:     client.Domicilio,
		NombreMascota: pet.Nombre,
		TipoMascota:   pet.Tipo,
		Motivo:        req.Motivo,
		Fecha:         fecha,
		Hora:          req.Hora,
		Servicio:      servicio,
		Estado:        entity.StatusPendiente,
		Vacunas:       entity.StringList(req.Vacunas),
	}

	if err := u.turnoRepo.Create(tx, turno); err != nil {
		u.log.Errorf("Failed to insert turno, compensating slot hold: %+v", err)
		u.releaseHold(fecha, req.Hora)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit booking, compensating slot hold: %+v", err)
		u.releaseHold(fecha, req.Hora)
		return nil, err
	}

	u.log.Infof("Turno created: id=%s, fecha=%s, hora=%s, servicio=%s", turno.ID, req.Fecha, req.Hora, servicio)

	// Step 7: collaborator hand-off, never part of the booking outcome
	u.handOff(turno)

	return converter.TurnoToResponse(turno), nil
}

// CancelTurnoByClient cancels an owner's own turno. Allowed only while the
// turno is pendiente and the visit is tomorrow or later.
func (u *bookingUsecase) CancelTurnoByClient(ctx context.Context, turnoID uuid.UUID) error {
	turno, err := u.findTurno(ctx, turnoID)
	if err != nil {
		return err
	}

	if !turno.IsPendiente() {
		return entity.ErrEstadoFinal
	}
	if !turno.CanClientCancel(u.now().UTC()) {
		return ErrCancelTooLate
	}

	return u.cancel(ctx, turno)
}

// CancelTurnoByAdmin cancels any pending turno, with no date restriction.
func (u *bookingUsecase) CancelTurnoByAdmin(ctx context.Context, turnoID uuid.UUID) error {
	turno, err := u.findTurno(ctx, turnoID)
	if err != nil {
		return err
	}
	return u.cancel(ctx, turno)
}

func (u *bookingUsecase) cancel(ctx context.Context, turno *entity.Appointment) error {
	rows, err := u.turnoRepo.UpdateEstado(u.db.WithContext(ctx), turno.ID, entity.StatusPendiente, entity.StatusCancelado)
	if err != nil {
		u.log.Warnf("Failed to cancel turno %s: %+v", turno.ID, err)
		return err
	}
	if rows == 0 {
		// Lost a cancel/complete race; the transition already happened
		return entity.ErrEstadoFinal
	}

	// The slot is free again immediately
	u.releaseHold(turno.Fecha, turno.Hora)

	u.log.Infof("Turno cancelled: id=%s, fecha=%s, hora=%s", turno.ID, entity.DateKey(turno.Fecha), turno.Hora)
	return nil
}

// CompleteTurno transitions a pending turno to completado.
func (u *bookingUsecase) CompleteTurno(ctx context.Context, turnoID uuid.UUID) (*dto.TurnoResponse, error) {
	turno, err := u.findTurno(ctx, turnoID)
	if err != nil {
		return nil, err
	}

	rows, err := u.turnoRepo.UpdateEstado(u.db.WithContext(ctx), turnoID, entity.StatusPendiente, entity.StatusCompletado)
	if err != nil {
		u.log.Warnf("Failed to complete turno %s: %+v", turnoID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, entity.ErrEstadoFinal
	}

	turno.Estado = entity.StatusCompletado
	u.log.Infof("Turno completed: id=%s", turnoID)
	return converter.TurnoToResponse(turno), nil
}

// RescheduleTurno moves a pending turno to a new fecha/hora after the same
// fresh availability re-check a new booking gets. The redis hold moves
// atomically with it.
func (u *bookingUsecase) RescheduleTurno(ctx context.Context, turnoID uuid.UUID, req *dto.RescheduleTurnoRequest) (*dto.TurnoResponse, error) {
	newFecha, err := time.Parse(entity.DateFormat, req.Fecha)
	if err != nil {
		return nil, ErrInvalidFecha
	}
	if !entity.IsValidSlot(req.Hora) {
		return nil, ErrInvalidHora
	}

	turno, err := u.findTurno(ctx, turnoID)
	if err != nil {
		return nil, err
	}
	if !turno.IsPendiente() {
		return nil, ErrTurnoNotPending
	}

	sameSlot := entity.DateKey(turno.Fecha) == req.Fecha && turno.Hora == req.Hora
	if sameSlot {
		return converter.TurnoToResponse(turno), nil
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.recheckSlot(ctx, tx, newFecha, req.Hora); err != nil {
		return nil, err
	}

	oldFecha, oldHora := turno.Fecha, turno.Hora
	if err := u.reservations.Move(ctx, oldFecha, oldHora, newFecha, req.Hora, turno.ID.String()); err != nil {
		if errors.Is(err, service.ErrSlotHeld) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	turno.Fecha = newFecha
	turno.Hora = req.Hora
	if err := u.turnoRepo.Update(tx, turno); err != nil {
		u.log.Errorf("Failed to reschedule turno %s, moving hold back: %+v", turnoID, err)
		u.moveHoldBack(newFecha, req.Hora, oldFecha, oldHora, turno.ID.String())
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit reschedule, moving hold back: %+v", err)
		u.moveHoldBack(newFecha, req.Hora, oldFecha, oldHora, turno.ID.String())
		return nil, err
	}

	u.log.Infof("Turno rescheduled: id=%s, %s %s -> %s %s", turnoID, entity.DateKey(oldFecha), oldHora, req.Fecha, req.Hora)
	return converter.TurnoToResponse(turno), nil
}

// DeleteTurno removes a turno entirely (admin only; regular flows transition
// estado instead).
func (u *bookingUsecase) DeleteTurno(ctx context.Context, turnoID uuid.UUID) error {
	turno, err := u.findTurno(ctx, turnoID)
	if err != nil {
		return err
	}

	rows, err := u.turnoRepo.Delete(u.db.WithContext(ctx), turnoID)
	if err != nil {
		u.log.Warnf("Failed to delete turno %s: %+v", turnoID, err)
		return err
	}
	if rows == 0 {
		return ErrTurnoNotFound
	}

	if turno.IsPendiente() {
		u.releaseHold(turno.Fecha, turno.Hora)
	}

	u.log.Infof("Turno deleted: id=%s", turnoID)
	return nil
}

// GetTurnosByFecha lists a day's turnos with the derived occupancy summary.
func (u *bookingUsecase) GetTurnosByFecha(ctx context.Context, fecha string) (*dto.TurnoListResponse, error) {
	day, err := time.Parse(entity.DateFormat, fecha)
	if err != nil {
		return nil, ErrInvalidFecha
	}

	turnos, err := u.turnoRepo.FindByFecha(u.db.WithContext(ctx), day)
	if err != nil {
		u.log.Warnf("Failed to find turnos for %s: %+v", fecha, err)
		return nil, err
	}

	return &dto.TurnoListResponse{
		Turnos:  converter.TurnosToResponses(turnos),
		Total:   len(turnos),
		Resumen: converter.OccupancyToResponse(entity.SummarizeDay(day, turnos)),
	}, nil
}

// recheckSlot validates the target slot against a fresh read of the blocked
// set and the day's active turnos.
func (u *bookingUsecase) recheckSlot(ctx context.Context, tx *gorm.DB, fecha time.Time, hora string) error {
	cal, err := u.blockedDateRepo.Get(tx)
	if err != nil {
		u.log.Warnf("Failed to load blocked dates: %+v", err)
		return err
	}
	blocked := entity.DateSet{}
	if cal != nil {
		blocked = cal.Fechas
	}

	turnos, err := u.turnoRepo.FindActiveByFecha(tx, fecha)
	if err != nil {
		u.log.Warnf("Failed to find turnos for %s: %+v", entity.DateKey(fecha), err)
		return err
	}

	if !entity.IsOperatingDay(fecha, blocked) {
		return ErrDayUnavailable
	}
	for _, free := range entity.AvailableHours(fecha, blocked, turnos) {
		if free == hora {
			return nil
		}
	}
	return ErrSlotTaken
}

func (u *bookingUsecase) findTurno(ctx context.Context, turnoID uuid.UUID) (*entity.Appointment, error) {
	turno, err := u.turnoRepo.FindByID(u.db.WithContext(ctx), turnoID)
	if err != nil {
		u.log.Warnf("Failed to find turno %s: %+v", turnoID, err)
		return nil, err
	}
	if turno == nil {
		return nil, ErrTurnoNotFound
	}
	return turno, nil
}

func (u *bookingUsecase) releaseHold(fecha time.Time, hora string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.reservations.Release(ctx, fecha, hora); err != nil {
		u.log.Warnf("Failed to release slot hold %s %s (non-fatal): %+v", entity.DateKey(fecha), hora, err)
	}
}

func (u *bookingUsecase) moveHoldBack(fromFecha time.Time, fromHora string, toFecha time.Time, toHora string, holder string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.reservations.Move(ctx, fromFecha, fromHora, toFecha, toHora, holder); err != nil {
		u.log.Errorf("CRITICAL: Failed to restore slot hold after DB failure: %+v", err)
	}
}

// handOff notifies the email and calendar collaborators about a committed
// booking. Their failures are warnings, never a booking failure.
func (u *bookingUsecase) handOff(turno *entity.Appointment) {
	notice := service.BookingNotice{
		NombreCliente: turno.NombreCliente,
		NombreMascota: turno.NombreMascota,
		TipoMascota:   turno.TipoMascota,
		Servicio:      string(turno.Servicio),
		Motivo:        turno.Motivo,
		Fecha:         entity.DateKey(turno.Fecha),
		Hora:          turno.Hora,
		Email:         turno.Email,
		Domicilio:     turno.Domicilio,
	}
	event := service.VisitEvent{
		NombreMascota: turno.NombreMascota,
		NombreCliente: turno.NombreCliente,
		Motivo:        turno.Motivo,
		Fecha:         entity.DateKey(turno.Fecha),
		Hora:          turno.Hora,
		Servicio:      string(turno.Servicio),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := u.notifier.SendConfirmation(ctx, notice); err != nil {
			u.log.Warnf("Booking saved but confirmation not sent: %+v", err)
		}
		if err := u.calendarSvc.CreateVisitEvent(ctx, event); err != nil {
			u.log.Warnf("Booking saved but calendar event not created: %+v", err)
		}
	}()
}
