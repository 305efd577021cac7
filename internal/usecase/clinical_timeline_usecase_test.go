package usecase

import (
	"context"
	"testing"
	"time"

	"vetcare-booking/internal/delivery/dto"
	"vetcare-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeNoteRepo struct {
	byID      map[uuid.UUID]*entity.ClinicalNote
	byMascota []entity.ClinicalNote
	created   []*entity.ClinicalNote
	updated   []*entity.ClinicalNote
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{byID: map[uuid.UUID]*entity.ClinicalNote{}}
}

func (f *fakeNoteRepo) Create(db *gorm.DB, note *entity.ClinicalNote) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	f.created = append(f.created, note)
	return nil
}

func (f *fakeNoteRepo) Update(db *gorm.DB, note *entity.ClinicalNote) error {
	f.updated = append(f.updated, note)
	return nil
}

func (f *fakeNoteRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ClinicalNote, error) {
	return f.byID[id], nil
}

func (f *fakeNoteRepo) FindByMascotaID(db *gorm.DB, mascotaID uuid.UUID) ([]entity.ClinicalNote, error) {
	return f.byMascota, nil
}

type timelineFixture struct {
	uc     *clinicalTimelineUsecase
	pets   *fakePetRepo
	notes  *fakeNoteRepo
	turnos *fakeTurnoRepo
}

func newTimelineFixture(t *testing.T) *timelineFixture {
	t.Helper()
	db, _ := newTestGormDB(t)
	pets := &fakePetRepo{byID: map[uuid.UUID]*entity.Pet{}}
	notes := newFakeNoteRepo()
	turnos := newFakeTurnoRepo()

	uc := NewClinicalTimelineUsecase(db, testLogger(), pets, notes, turnos).(*clinicalTimelineUsecase)
	uc.now = func() time.Time { return testNow }

	return &timelineFixture{uc: uc, pets: pets, notes: notes, turnos: turnos}
}

func TestBuildTimeline(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown mascota", func(t *testing.T) {
		f := newTimelineFixture(t)
		_, err := f.uc.BuildTimeline(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrMascotaNotFound)
	})

	t.Run("merges historias with id and legacy name matches", func(t *testing.T) {
		f := newTimelineFixture(t)
		petID := uuid.New()
		f.pets.byID[petID] = &entity.Pet{ID: petID, Nombre: "Firulais"}

		// one direct id match, one legacy name-only match, one turno found by
		// both tiers (must appear once)
		shared := entity.Appointment{
			ID: uuid.New(), MascotaID: petID, NombreMascota: "Firulais",
			Fecha: mustDate(t, "2026-08-20"), Hora: "10:00", Estado: entity.StatusCompletado,
		}
		legacy := entity.Appointment{
			ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), NombreMascota: " FIRULAIS ",
			Fecha: mustDate(t, "2026-08-10"), Hora: "09:00", Estado: entity.StatusCompletado,
		}
		upcoming := entity.Appointment{
			ID: uuid.New(), MascotaID: petID, NombreMascota: "Firulais",
			Fecha: mustDate(t, "2026-09-15"), Hora: "11:00", Estado: entity.StatusPendiente,
		}

		f.turnos.byMascota = []entity.Appointment{shared, upcoming}
		f.turnos.bySnapshot = []entity.Appointment{shared, legacy}

		f.notes.byMascota = []entity.ClinicalNote{
			{ID: uuid.New(), MascotaID: petID, FechaAtencion: mustDate(t, "2026-08-20"), Diagnostico: "otitis"},
		}

		resp, err := f.uc.BuildTimeline(ctx, petID)

		require.NoError(t, err)
		assert.Equal(t, petID, resp.MascotaID)
		assert.Equal(t, 4, resp.Total, "shared turno deduplicated")

		// newest first
		assert.Equal(t, "2026-09-15", resp.Entradas[0].Fecha)
		assert.Equal(t, ClasificacionProximo, resp.Entradas[0].Clasificacion)
		assert.Equal(t, "2026-08-10", resp.Entradas[len(resp.Entradas)-1].Fecha)

		for _, e := range resp.Entradas[1:] {
			assert.Equal(t, ClasificacionRealizado, e.Clasificacion)
		}
	})

	t.Run("same-date turno and historia keep a stable order", func(t *testing.T) {
		f := newTimelineFixture(t)
		petID := uuid.New()
		f.pets.byID[petID] = &entity.Pet{ID: petID, Nombre: "Michi"}

		f.notes.byMascota = []entity.ClinicalNote{
			{ID: uuid.New(), MascotaID: petID, FechaAtencion: mustDate(t, "2026-08-20"), Diagnostico: "control"},
		}
		f.turnos.byMascota = []entity.Appointment{
			{ID: uuid.New(), MascotaID: petID, Fecha: mustDate(t, "2026-08-20"), Hora: "10:00", Estado: entity.StatusCompletado},
		}

		first, err := f.uc.BuildTimeline(ctx, petID)
		require.NoError(t, err)
		second, err := f.uc.BuildTimeline(ctx, petID)
		require.NoError(t, err)

		require.Equal(t, first.Total, second.Total)
		for i := range first.Entradas {
			assert.Equal(t, first.Entradas[i].Tipo, second.Entradas[i].Tipo)
			assert.Equal(t, first.Entradas[i].Fecha, second.Entradas[i].Fecha)
		}
	})

	t.Run("proxima visita stays inside the note", func(t *testing.T) {
		f := newTimelineFixture(t)
		petID := uuid.New()
		f.pets.byID[petID] = &entity.Pet{ID: petID, Nombre: "Michi"}

		proxima := mustDate(t, "2026-10-01")
		f.notes.byMascota = []entity.ClinicalNote{
			{ID: uuid.New(), MascotaID: petID, FechaAtencion: mustDate(t, "2026-08-20"),
				Diagnostico: "vacuna", ProximaVisita: &proxima},
		}

		resp, err := f.uc.BuildTimeline(ctx, petID)

		require.NoError(t, err)
		require.Equal(t, 1, resp.Total, "proxima_visita never becomes its own entry")
		assert.Equal(t, "2026-10-01", resp.Entradas[0].Historia.ProximaVisita)
	})
}

func TestCreateHistoria(t *testing.T) {
	ctx := context.Background()

	t.Run("standalone note", func(t *testing.T) {
		f := newTimelineFixture(t)
		petID := uuid.New()
		f.pets.byID[petID] = &entity.Pet{ID: petID, Nombre: "Firulais"}

		resp, err := f.uc.CreateHistoria(ctx, petID, &dto.CreateHistoriaRequest{
			FechaAtencion: "2026-08-25",
			Diagnostico:   "otitis leve",
			Tratamiento:   "gotas 7 dias",
		})

		require.NoError(t, err)
		assert.Equal(t, "2026-08-25", resp.FechaAtencion)
		assert.Equal(t, "otitis leve", resp.Diagnostico)
		require.Len(t, f.notes.created, 1)
	})

	t.Run("turno motivo prefills the note", func(t *testing.T) {
		f := newTimelineFixture(t)
		petID := uuid.New()
		turnoID := uuid.New()
		f.pets.byID[petID] = &entity.Pet{ID: petID, Nombre: "Firulais"}
		f.turnos.byID[turnoID] = &entity.Appointment{ID: turnoID, Motivo: "cojea de la pata trasera"}

		resp, err := f.uc.CreateHistoria(ctx, petID, &dto.CreateHistoriaRequest{
			FechaAtencion: "2026-08-25",
			Diagnostico:   "esguince",
			TurnoID:       &turnoID,
		})

		require.NoError(t, err)
		assert.Equal(t, "cojea de la pata trasera", resp.Motivo)
	})

	t.Run("unknown mascota", func(t *testing.T) {
		f := newTimelineFixture(t)
		_, err := f.uc.CreateHistoria(ctx, uuid.New(), &dto.CreateHistoriaRequest{
			FechaAtencion: "2026-08-25", Diagnostico: "x",
		})
		assert.ErrorIs(t, err, ErrMascotaNotFound)
	})

	t.Run("unknown turno reference", func(t *testing.T) {
		f := newTimelineFixture(t)
		petID := uuid.New()
		turnoID := uuid.New()
		f.pets.byID[petID] = &entity.Pet{ID: petID}

		_, err := f.uc.CreateHistoria(ctx, petID, &dto.CreateHistoriaRequest{
			FechaAtencion: "2026-08-25", Diagnostico: "x", TurnoID: &turnoID,
		})
		assert.ErrorIs(t, err, ErrTurnoNotFound)
	})
}

func TestUpdateHistoria(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces provided fields only", func(t *testing.T) {
		f := newTimelineFixture(t)
		noteID := uuid.New()
		f.notes.byID[noteID] = &entity.ClinicalNote{
			ID: noteID, FechaAtencion: mustDate(t, "2026-08-25"),
			Diagnostico: "otitis leve", Tratamiento: "gotas 7 dias",
		}

		resp, err := f.uc.UpdateHistoria(ctx, noteID, &dto.UpdateHistoriaRequest{
			Diagnostico: "otitis media",
		})

		require.NoError(t, err)
		assert.Equal(t, "otitis media", resp.Diagnostico)
		assert.Equal(t, "gotas 7 dias", resp.Tratamiento)
		require.Len(t, f.notes.updated, 1)
	})

	t.Run("unknown historia", func(t *testing.T) {
		f := newTimelineFixture(t)
		_, err := f.uc.UpdateHistoria(ctx, uuid.New(), &dto.UpdateHistoriaRequest{Diagnostico: "x"})
		assert.ErrorIs(t, err, ErrHistoriaNotFound)
	})
}
