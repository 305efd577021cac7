package service

import (
	"context"
	"testing"

	"vetcare-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeClientRepo struct {
	byDNI     map[string]*entity.Client
	createErr error
	created   []*entity.Client
	updated   []*entity.Client
}

func (f *fakeClientRepo) Create(db *gorm.DB, client *entity.Client) error {
	if f.createErr != nil {
		return f.createErr
	}
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	f.created = append(f.created, client)
	return nil
}

func (f *fakeClientRepo) Update(db *gorm.DB, client *entity.Client) error {
	f.updated = append(f.updated, client)
	return nil
}

func (f *fakeClientRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Client, error) {
	return nil, nil
}

func (f *fakeClientRepo) FindByDNI(db *gorm.DB, dni string) (*entity.Client, error) {
	return f.byDNI[dni], nil
}

func (f *fakeClientRepo) FindByDNIWithPets(db *gorm.DB, dni string) (*entity.Client, error) {
	return f.byDNI[dni], nil
}

type fakePetRepo struct {
	byID    map[uuid.UUID]*entity.Pet
	created []*entity.Pet
	updated []*entity.Pet
}

func (f *fakePetRepo) Create(db *gorm.DB, pet *entity.Pet) error {
	if pet.ID == uuid.Nil {
		pet.ID = uuid.New()
	}
	f.created = append(f.created, pet)
	return nil
}

func (f *fakePetRepo) Update(db *gorm.DB, pet *entity.Pet) error {
	f.updated = append(f.updated, pet)
	return nil
}

func (f *fakePetRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Pet, error) {
	return f.byID[id], nil
}

func (f *fakePetRepo) FindByClienteID(db *gorm.DB, clienteID uuid.UUID) ([]entity.Pet, error) {
	return nil, nil
}

func TestResolveClient(t *testing.T) {
	ctx := context.Background()

	t.Run("dni miss creates a new client", func(t *testing.T) {
		clients := &fakeClientRepo{byDNI: map[string]*entity.Client{}}
		svc := NewIdentityService(testLogger(), clients, &fakePetRepo{})

		client, changes, err := svc.ResolveClient(ctx, nil, ClientInput{
			DNI:    "30111222",
			Nombre: "Ana Lopez",
		})

		require.NoError(t, err)
		assert.Empty(t, changes)
		assert.Equal(t, "30111222", client.DNI)
		assert.Len(t, clients.created, 1)
	})

	t.Run("dni hit diffs contact fields", func(t *testing.T) {
		existing := &entity.Client{
			ID:       uuid.New(),
			DNI:      "30111222",
			Nombre:   "Ana Lopez",
			Telefono: "11-5555-0001",
		}
		clients := &fakeClientRepo{byDNI: map[string]*entity.Client{"30111222": existing}}
		svc := NewIdentityService(testLogger(), clients, &fakePetRepo{})

		client, changes, err := svc.ResolveClient(ctx, nil, ClientInput{
			DNI:      "30111222",
			Nombre:   "Ana Lopez",
			Telefono: "11-5555-0002",
		})

		require.NoError(t, err)
		assert.Equal(t, existing.ID, client.ID)
		require.Len(t, changes, 1)
		assert.Equal(t, entity.FieldTelefono, changes[0].Campo)
		assert.Equal(t, "11-5555-0001", changes[0].ValorAnterior)
		assert.Len(t, clients.updated, 1)
		assert.Empty(t, clients.created)
	})

	t.Run("dni hit with identical fields skips the update", func(t *testing.T) {
		existing := &entity.Client{ID: uuid.New(), DNI: "30111222", Nombre: "Ana Lopez"}
		clients := &fakeClientRepo{byDNI: map[string]*entity.Client{"30111222": existing}}
		svc := NewIdentityService(testLogger(), clients, &fakePetRepo{})

		_, changes, err := svc.ResolveClient(ctx, nil, ClientInput{DNI: "30111222", Nombre: "Ana Lopez"})

		require.NoError(t, err)
		assert.Empty(t, changes)
		assert.Empty(t, clients.updated)
	})

	t.Run("empty dni always creates", func(t *testing.T) {
		clients := &fakeClientRepo{byDNI: map[string]*entity.Client{}}
		svc := NewIdentityService(testLogger(), clients, &fakePetRepo{})

		_, _, err := svc.ResolveClient(ctx, nil, ClientInput{Nombre: "Sin Documento"})
		require.NoError(t, err)
		_, _, err = svc.ResolveClient(ctx, nil, ClientInput{Nombre: "Sin Documento"})
		require.NoError(t, err)

		assert.Len(t, clients.created, 2)
	})

	t.Run("lost creation race maps to ErrDNIConflict", func(t *testing.T) {
		clients := &fakeClientRepo{byDNI: map[string]*entity.Client{}, createErr: gorm.ErrDuplicatedKey}
		svc := NewIdentityService(testLogger(), clients, &fakePetRepo{})

		_, _, err := svc.ResolveClient(ctx, nil, ClientInput{DNI: "30111222", Nombre: "Ana Lopez"})
		assert.ErrorIs(t, err, ErrDNIConflict)
	})
}

func TestResolvePet(t *testing.T) {
	ctx := context.Background()
	clienteID := uuid.New()

	t.Run("no id creates a new pet", func(t *testing.T) {
		pets := &fakePetRepo{byID: map[uuid.UUID]*entity.Pet{}}
		svc := NewIdentityService(testLogger(), &fakeClientRepo{}, pets)

		pet, err := svc.ResolvePet(ctx, nil, clienteID, nil, PetInput{Nombre: "Firulais", Tipo: "perro"})

		require.NoError(t, err)
		assert.Equal(t, clienteID, pet.ClienteID)
		assert.Len(t, pets.created, 1)
	})

	t.Run("known id updates in place", func(t *testing.T) {
		petID := uuid.New()
		pets := &fakePetRepo{byID: map[uuid.UUID]*entity.Pet{
			petID: {ID: petID, ClienteID: clienteID, Nombre: "Firulais", Tipo: "perro", Edad: 3},
		}}
		svc := NewIdentityService(testLogger(), &fakeClientRepo{}, pets)

		pet, err := svc.ResolvePet(ctx, nil, clienteID, &petID, PetInput{Edad: 4})

		require.NoError(t, err)
		assert.Equal(t, 4, pet.Edad)
		assert.Equal(t, "Firulais", pet.Nombre, "absent fields are untouched")
		assert.Len(t, pets.updated, 1)
	})

	t.Run("unknown id", func(t *testing.T) {
		petID := uuid.New()
		pets := &fakePetRepo{byID: map[uuid.UUID]*entity.Pet{}}
		svc := NewIdentityService(testLogger(), &fakeClientRepo{}, pets)

		_, err := svc.ResolvePet(ctx, nil, clienteID, &petID, PetInput{})
		assert.ErrorIs(t, err, ErrMascotaNotFound)
	})

	t.Run("pet owned by a different client", func(t *testing.T) {
		petID := uuid.New()
		pets := &fakePetRepo{byID: map[uuid.UUID]*entity.Pet{
			petID: {ID: petID, ClienteID: uuid.New(), Nombre: "Firulais"},
		}}
		svc := NewIdentityService(testLogger(), &fakeClientRepo{}, pets)

		_, err := svc.ResolvePet(ctx, nil, clienteID, &petID, PetInput{})
		assert.ErrorIs(t, err, ErrMascotaNotOwned)
	})
}
