package usecase

import (
	"context"
	"testing"

	"vetcare-booking/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDayAvailability(t *testing.T) {
	ctx := context.Background()

	newUC := func(t *testing.T, turnos *fakeTurnoRepo, blocked *fakeBlockedDateRepo) AvailabilityUsecase {
		db, _ := newTestGormDB(t)
		return NewAvailabilityUsecase(db, testLogger(), turnos, blocked)
	}

	t.Run("open day with bookings", func(t *testing.T) {
		turnos := newFakeTurnoRepo()
		turnos.byDay = []entity.Appointment{
			{Fecha: mustDate(t, "2026-09-07"), Hora: "10:00", Estado: entity.StatusPendiente},
			{Fecha: mustDate(t, "2026-09-07"), Hora: "11:00", Estado: entity.StatusCancelado},
		}
		uc := newUC(t, turnos, &fakeBlockedDateRepo{})

		resp, err := uc.GetDayAvailability(ctx, "2026-09-07")

		require.NoError(t, err)
		assert.True(t, resp.Disponible)
		assert.NotContains(t, resp.Horarios, "10:00")
		assert.Contains(t, resp.Horarios, "11:00", "cancelled frees the slot")
		assert.Len(t, resp.Horarios, entity.SlotsPerDay-1)
	})

	t.Run("sunday", func(t *testing.T) {
		uc := newUC(t, newFakeTurnoRepo(), &fakeBlockedDateRepo{})

		resp, err := uc.GetDayAvailability(ctx, "2026-09-06")

		require.NoError(t, err)
		assert.False(t, resp.Disponible)
		assert.Empty(t, resp.Horarios)
	})

	t.Run("blocked date", func(t *testing.T) {
		blocked := &fakeBlockedDateRepo{cal: &entity.BlockedDateCalendar{
			ID:     entity.BlockedDateCalendarID,
			Fechas: entity.NewDateSet("2026-09-07"),
		}}
		uc := newUC(t, newFakeTurnoRepo(), blocked)

		resp, err := uc.GetDayAvailability(ctx, "2026-09-07")

		require.NoError(t, err)
		assert.False(t, resp.Disponible)
		assert.Empty(t, resp.Horarios)
	})

	t.Run("fully booked day is unavailable", func(t *testing.T) {
		turnos := newFakeTurnoRepo()
		for _, hora := range entity.SlotGrid() {
			turnos.byDay = append(turnos.byDay, entity.Appointment{
				Fecha: mustDate(t, "2026-09-07"), Hora: hora, Estado: entity.StatusPendiente,
			})
		}
		uc := newUC(t, turnos, &fakeBlockedDateRepo{})

		resp, err := uc.GetDayAvailability(ctx, "2026-09-07")

		require.NoError(t, err)
		assert.False(t, resp.Disponible)
		assert.Empty(t, resp.Horarios)
	})

	t.Run("invalid fecha", func(t *testing.T) {
		uc := newUC(t, newFakeTurnoRepo(), &fakeBlockedDateRepo{})
		_, err := uc.GetDayAvailability(ctx, "next tuesday")
		assert.ErrorIs(t, err, ErrInvalidFecha)
	})
}

func TestGetDaySummary(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestGormDB(t)

	turnos := newFakeTurnoRepo()
	for i := 0; i < 7; i++ {
		turnos.byDay = append(turnos.byDay, entity.Appointment{Estado: entity.StatusPendiente})
	}
	turnos.byDay = append(turnos.byDay, entity.Appointment{Estado: entity.StatusCancelado})

	uc := NewAvailabilityUsecase(db, testLogger(), turnos, &fakeBlockedDateRepo{})

	resp, err := uc.GetDaySummary(ctx, "2026-09-07")

	require.NoError(t, err)
	assert.Equal(t, 7, resp.Pendientes)
	assert.Equal(t, 1, resp.Cancelados)
	assert.Equal(t, entity.CargaMedia, resp.Carga)
	assert.InDelta(t, float64(7)/13*100, resp.Ocupacion, 0.001)
}
