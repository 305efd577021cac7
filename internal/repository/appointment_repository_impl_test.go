package repository

import (
	"testing"
	"time"

	"vetcare-booking/internal/domain/entity"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
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

func TestAppointmentFindByID(t *testing.T) {
	repo := NewAppointmentRepository()

	t.Run("miss returns nil without error", func(t *testing.T) {
		db, mock := newTestGormDB(t)
		mock.ExpectQuery(`SELECT .* FROM "turnos"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		turno, err := repo.FindByID(db, uuid.New())

		require.NoError(t, err)
		assert.Nil(t, turno)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hit", func(t *testing.T) {
		db, mock := newTestGormDB(t)
		id := uuid.New()
		mock.ExpectQuery(`SELECT .* FROM "turnos"`).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "hora", "estado"}).
				AddRow(id, "10:00", "pendiente"))

		turno, err := repo.FindByID(db, id)

		require.NoError(t, err)
		require.NotNil(t, turno)
		assert.Equal(t, "10:00", turno.Hora)
		assert.Equal(t, entity.StatusPendiente, turno.Estado)
	})
}

func TestAppointmentUpdateEstado(t *testing.T) {
	repo := NewAppointmentRepository()

	t.Run("transition succeeds while still pending", func(t *testing.T) {
		db, mock := newTestGormDB(t)
		id := uuid.New()
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "turnos" SET .*"estado"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rows, err := repo.UpdateEstado(db, id, entity.StatusPendiente, entity.StatusCancelado)

		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows when the estado already moved on", func(t *testing.T) {
		db, mock := newTestGormDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "turnos" SET .*"estado"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		rows, err := repo.UpdateEstado(db, uuid.New(), entity.StatusPendiente, entity.StatusCompletado)

		require.NoError(t, err)
		assert.Zero(t, rows)
	})
}

func TestAppointmentFindBySnapshotName(t *testing.T) {
	db, mock := newTestGormDB(t)
	repo := NewAppointmentRepository()

	// The query pins mascota_id to the nil uuid and normalizes the name
	mock.ExpectQuery(`SELECT .* FROM "turnos" WHERE mascota_id = .* AND LOWER\(TRIM\(nombre_mascota\)\) = `).
		WithArgs(uuid.Nil, "firulais").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre_mascota"}).
			AddRow(uuid.New(), "Firulais"))

	turnos, err := repo.FindBySnapshotName(db, "  FIRULAIS ")

	require.NoError(t, err)
	require.Len(t, turnos, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCreate(t *testing.T) {
	db, mock := newTestGormDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "turnos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	turno := &entity.Appointment{
		NombreCliente: "Ana Lopez",
		NombreMascota: "Firulais",
		Fecha:         time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		Hora:          "10:00",
		Servicio:      entity.ServiceConsultaGeneral,
		Estado:        entity.StatusPendiente,
	}

	require.NoError(t, repo.Create(db, turno))
	require.NoError(t, mock.ExpectationsWereMet())
}
