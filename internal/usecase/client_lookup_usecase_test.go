package usecase

import (
	"context"
	"testing"

	"vetcare-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClientByDNI(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestGormDB(t)

	clients := &fakeClientRepo{byDNI: map[string]*entity.Client{
		"30111222": {
			ID:     uuid.New(),
			DNI:    "30111222",
			Nombre: "Ana Lopez",
			Mascotas: []entity.Pet{
				{ID: uuid.New(), Nombre: "Firulais", Tipo: "perro"},
			},
		},
	}}

	uc := NewClientLookupUsecase(db, testLogger(), clients)

	t.Run("known dni prefills the form", func(t *testing.T) {
		resp, err := uc.GetClientByDNI(ctx, "30111222")

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "Ana Lopez", resp.Nombre)
		require.Len(t, resp.Mascotas, 1)
		assert.Equal(t, "Firulais", resp.Mascotas[0].Nombre)
	})

	t.Run("unknown dni is not an error", func(t *testing.T) {
		resp, err := uc.GetClientByDNI(ctx, "99999999")

		require.NoError(t, err)
		assert.Nil(t, resp)
	})
}
