package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"vetcare-booking/internal/converter"
	"vetcare-booking/internal/delivery/dto"
	"vetcare-booking/internal/domain/entity"
	"vetcare-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMascotaNotFound  = errors.New("mascota not found")
	ErrHistoriaNotFound = errors.New("historia not found")
)

// Timeline entry kinds and classifications
const (
	TimelineTipoTurno    = "turno"
	TimelineTipoHistoria = "historia"

	ClasificacionProximo   = "proximo"
	ClasificacionRealizado = "realizado"
)

// ClinicalTimelineUsecase builds the libreta sanitaria: every historia and
// every turno of a pet merged into one chronological view. Read-only and
// deterministic: identical inputs always yield the identical sequence.
type ClinicalTimelineUsecase interface {
	BuildTimeline(ctx context.Context, mascotaID uuid.UUID) (*dto.TimelineResponse, error)
	CreateHistoria(ctx context.Context, mascotaID uuid.UUID, req *dto.CreateHistoriaRequest) (*dto.HistoriaResponse, error)
	UpdateHistoria(ctx context.Context, historiaID uuid.UUID, req *dto.UpdateHistoriaRequest) (*dto.HistoriaResponse, error)
}

type clinicalTimelineUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	petRepo   repository.PetRepository
	noteRepo  repository.ClinicalNoteRepository
	turnoRepo repository.AppointmentRepository

	now func() time.Time
}

func NewClinicalTimelineUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	petRepo repository.PetRepository,
	noteRepo repository.ClinicalNoteRepository,
	turnoRepo repository.AppointmentRepository,
) ClinicalTimelineUsecase {
	return &clinicalTimelineUsecase{
		db:        db,
		log:       log,
		petRepo:   petRepo,
		noteRepo:  noteRepo,
		turnoRepo: turnoRepo,
		now:       time.Now,
	}
}

// BuildTimeline gathers the pet's historias and turnos and merges them into
// one sequence, newest first.
func (u *clinicalTimelineUsecase) BuildTimeline(ctx context.Context, mascotaID uuid.UUID) (*dto.TimelineResponse, error) {
	db := u.db.WithContext(ctx)

	pet, err := u.petRepo.FindByID(db, mascotaID)
	if err != nil {
		u.log.Warnf("Failed to find mascota %s: %+v", mascotaID, err)
		return nil, err
	}
	if pet == nil {
		return nil, ErrMascotaNotFound
	}

	notes, err := u.noteRepo.FindByMascotaID(db, mascotaID)
	if err != nil {
		u.log.Warnf("Failed to find historias for %s: %+v", mascotaID, err)
		return nil, err
	}

	turnos, err := u.resolveTurnos(db, pet)
	if err != nil {
		return nil, err
	}

	entries := mergeTimeline(notes, turnos, u.now().UTC())
	return &dto.TimelineResponse{
		MascotaID: pet.ID,
		Nombre:    pet.Nombre,
		Entradas:  entries,
		Total:     len(entries),
	}, nil
}

// resolveTurnos is the two-tier appointment match: turnos referencing the pet
// by id, plus legacy turnos that only carry the snapshot name. Each tier is
// queried separately so either can be exercised on its own; results are
// deduplicated by turno id.
func (u *clinicalTimelineUsecase) resolveTurnos(db *gorm.DB, pet *entity.Pet) ([]entity.Appointment, error) {
	byID, err := u.turnoRepo.FindByMascotaID(db, pet.ID)
	if err != nil {
		u.log.Warnf("Failed to find turnos for mascota %s: %+v", pet.ID, err)
		return nil, err
	}

	byName, err := u.turnoRepo.FindBySnapshotName(db, pet.Nombre)
	if err != nil {
		u.log.Warnf("Failed to find legacy turnos for %q: %+v", pet.Nombre, err)
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(byID))
	turnos := make([]entity.Appointment, 0, len(byID)+len(byName))
	for _, t := range byID {
		seen[t.ID] = struct{}{}
		turnos = append(turnos, t)
	}
	for _, t := range byName {
		if _, ok := seen[t.ID]; !ok {
			turnos = append(turnos, t)
		}
	}
	return turnos, nil
}

// mergeTimeline merges historias and turnos into one sequence sorted by date
// descending, ties broken by time-of-day descending where available, falling
// back to insertion order (stable sort). A turno strictly after now is
// classified proximo, everything else realizado; a historia's proxima_visita
// stays an attribute of the note and never becomes its own entry.
func mergeTimeline(notes []entity.ClinicalNote, turnos []entity.Appointment, now time.Time) []dto.TimelineEntryResponse {
	entries := make([]dto.TimelineEntryResponse, 0, len(notes)+len(turnos))

	for i := range notes {
		note := notes[i]
		entries = append(entries, dto.TimelineEntryResponse{
			Tipo:          TimelineTipoHistoria,
			Fecha:         entity.DateKey(note.FechaAtencion),
			Clasificacion: ClasificacionRealizado,
			Historia:      converter.HistoriaToResponse(&note),
		})
	}

	for i := range turnos {
		turno := turnos[i]
		clasificacion := ClasificacionRealizado
		if turno.Fecha.After(now) {
			clasificacion = ClasificacionProximo
		}
		entries = append(entries, dto.TimelineEntryResponse{
			Tipo:          TimelineTipoTurno,
			Fecha:         entity.DateKey(turno.Fecha),
			Hora:          turno.Hora,
			Clasificacion: clasificacion,
			Turno:         converter.TurnoToResponse(&turno),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Fecha != entries[j].Fecha {
			return entries[i].Fecha > entries[j].Fecha
		}
		return entries[i].Hora > entries[j].Hora
	})

	return entries
}

// CreateHistoria records a consultation, standalone or derived from a turno
// (the turno's motivo prefills the note when none is given).
func (u *clinicalTimelineUsecase) CreateHistoria(ctx context.Context, mascotaID uuid.UUID, req *dto.CreateHistoriaRequest) (*dto.HistoriaResponse, error) {
	db := u.db.WithContext(ctx)

	pet, err := u.petRepo.FindByID(db, mascotaID)
	if err != nil {
		u.log.Warnf("Failed to find mascota %s: %+v", mascotaID, err)
		return nil, err
	}
	if pet == nil {
		return nil, ErrMascotaNotFound
	}

	fechaAtencion, err := time.Parse(entity.DateFormat, req.FechaAtencion)
	if err != nil {
		return nil, ErrInvalidFecha
	}

	note := &entity.ClinicalNote{
		MascotaID:     mascotaID,
		FechaAtencion: fechaAtencion,
		Motivo:        req.Motivo,
		Diagnostico:   req.Diagnostico,
		Tratamiento:   req.Tratamiento,
		Observaciones: req.Observaciones,
	}

	if req.ProximaVisita != "" {
		proxima, err := time.Parse(entity.DateFormat, req.ProximaVisita)
		if err != nil {
			return nil, ErrInvalidFecha
		}
		note.ProximaVisita = &proxima
	}

	if req.TurnoID != nil {
		turno, err := u.turnoRepo.FindByID(db, *req.TurnoID)
		if err != nil {
			u.log.Warnf("Failed to find turno %s: %+v", *req.TurnoID, err)
			return nil, err
		}
		if turno == nil {
			return nil, ErrTurnoNotFound
		}
		if note.Motivo == "" {
			note.Motivo = turno.Motivo
		}
	}

	if err := u.noteRepo.Create(db, note); err != nil {
		u.log.Warnf("Failed to create historia: %+v", err)
		return nil, err
	}

	u.log.Infof("Historia created: id=%s, mascota=%s", note.ID, mascotaID)
	return converter.HistoriaToResponse(note), nil
}

// UpdateHistoria replaces fields of an existing note in place.
func (u *clinicalTimelineUsecase) UpdateHistoria(ctx context.Context, historiaID uuid.UUID, req *dto.UpdateHistoriaRequest) (*dto.HistoriaResponse, error) {
	db := u.db.WithContext(ctx)

	note, err := u.noteRepo.FindByID(db, historiaID)
	if err != nil {
		u.log.Warnf("Failed to find historia %s: %+v", historiaID, err)
		return nil, err
	}
	if note == nil {
		return nil, ErrHistoriaNotFound
	}

	if req.FechaAtencion != "" {
		fecha, err := time.Parse(entity.DateFormat, req.FechaAtencion)
		if err != nil {
			return nil, ErrInvalidFecha
		}
		note.FechaAtencion = fecha
	}
	if req.Motivo != "" {
		note.Motivo = req.Motivo
	}
	if req.Diagnostico != "" {
		note.Diagnostico = req.Diagnostico
	}
	if req.Tratamiento != "" {
		note.Tratamiento = req.Tratamiento
	}
	if req.Observaciones != "" {
		note.Observaciones = req.Observaciones
	}
	if req.ProximaVisita != "" {
		proxima, err := time.Parse(entity.DateFormat, req.ProximaVisita)
		if err != nil {
			return nil, ErrInvalidFecha
		}
		note.ProximaVisita = &proxima
	}

	if err := u.noteRepo.Update(db, note); err != nil {
		u.log.Warnf("Failed to update historia %s: %+v", historiaID, err)
		return nil, err
	}

	return converter.HistoriaToResponse(note), nil
}
