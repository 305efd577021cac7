package service

import (
	"context"
	"testing"
	"time"

	"vetcare-booking/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func newTestGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

type fakeTurnoRepo struct {
	active []entity.Appointment
}

func (f *fakeTurnoRepo) Create(db *gorm.DB, turno *entity.Appointment) error { return nil }
func (f *fakeTurnoRepo) Update(db *gorm.DB, turno *entity.Appointment) error { return nil }
func (f *fakeTurnoRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return nil, nil
}
func (f *fakeTurnoRepo) FindByFecha(db *gorm.DB, fecha time.Time) ([]entity.Appointment, error) {
	return nil, nil
}
func (f *fakeTurnoRepo) FindActiveByFecha(db *gorm.DB, fecha time.Time) ([]entity.Appointment, error) {
	return nil, nil
}
func (f *fakeTurnoRepo) FindByMascotaID(db *gorm.DB, mascotaID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}
func (f *fakeTurnoRepo) FindBySnapshotName(db *gorm.DB, nombreMascota string) ([]entity.Appointment, error) {
	return nil, nil
}
func (f *fakeTurnoRepo) FindActiveFromFecha(db *gorm.DB, fecha time.Time) ([]entity.Appointment, error) {
	return f.active, nil
}
func (f *fakeTurnoRepo) UpdateEstado(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	return 1, nil
}
func (f *fakeTurnoRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) { return 1, nil }

func futureDate(t *testing.T) time.Time {
	t.Helper()
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 7)
}

func TestReserve(t *testing.T) {
	mr, client := newTestRedis(t)
	svc := NewSlotReservationService(nil, client, testLogger(), &fakeTurnoRepo{})
	ctx := context.Background()
	fecha := futureDate(t)

	require.NoError(t, svc.Reserve(ctx, fecha, "10:00", "turno-1"))
	assert.True(t, mr.Exists("turno:hold:"+entity.DateKey(fecha)+":10:00"))

	err := svc.Reserve(ctx, fecha, "10:00", "turno-2")
	assert.ErrorIs(t, err, ErrSlotHeld)

	// A different hora on the same day is independent
	require.NoError(t, svc.Reserve(ctx, fecha, "11:00", "turno-2"))
}

func TestRelease(t *testing.T) {
	mr, client := newTestRedis(t)
	svc := NewSlotReservationService(nil, client, testLogger(), &fakeTurnoRepo{})
	ctx := context.Background()
	fecha := futureDate(t)

	require.NoError(t, svc.Reserve(ctx, fecha, "10:00", "turno-1"))
	require.NoError(t, svc.Release(ctx, fecha, "10:00"))
	assert.False(t, mr.Exists("turno:hold:"+entity.DateKey(fecha)+":10:00"))

	// Releasing an absent hold is a no-op
	require.NoError(t, svc.Release(ctx, fecha, "10:00"))

	// The slot is bookable again
	require.NoError(t, svc.Reserve(ctx, fecha, "10:00", "turno-2"))
}

func TestMove(t *testing.T) {
	mr, client := newTestRedis(t)
	svc := NewSlotReservationService(nil, client, testLogger(), &fakeTurnoRepo{})
	ctx := context.Background()
	fecha := futureDate(t)

	require.NoError(t, svc.Reserve(ctx, fecha, "10:00", "turno-1"))

	t.Run("moves the hold atomically", func(t *testing.T) {
		require.NoError(t, svc.Move(ctx, fecha, "10:00", fecha, "12:00", "turno-1"))
		assert.False(t, mr.Exists("turno:hold:"+entity.DateKey(fecha)+":10:00"))
		assert.True(t, mr.Exists("turno:hold:"+entity.DateKey(fecha)+":12:00"))
	})

	t.Run("fails without touching anything when the target is held", func(t *testing.T) {
		require.NoError(t, svc.Reserve(ctx, fecha, "13:00", "turno-2"))

		err := svc.Move(ctx, fecha, "12:00", fecha, "13:00", "turno-1")
		assert.ErrorIs(t, err, ErrSlotHeld)
		assert.True(t, mr.Exists("turno:hold:"+entity.DateKey(fecha)+":12:00"), "source hold survives")
	})
}

func TestWarmUp(t *testing.T) {
	mr, client := newTestRedis(t)
	db, _ := newTestGormDB(t)
	fecha := futureDate(t)

	repo := &fakeTurnoRepo{active: []entity.Appointment{
		{ID: uuid.New(), Fecha: fecha, Hora: "09:00", Estado: entity.StatusPendiente},
		{ID: uuid.New(), Fecha: fecha, Hora: "10:00", Estado: entity.StatusPendiente},
	}}

	svc := NewSlotReservationService(db, client, testLogger(), repo)
	require.NoError(t, svc.WarmUp(context.Background()))

	assert.True(t, mr.Exists("turno:hold:"+entity.DateKey(fecha)+":09:00"))
	assert.True(t, mr.Exists("turno:hold:"+entity.DateKey(fecha)+":10:00"))
}
