package service

import (
	"context"
	"errors"
	"time"

	"vetcare-booking/internal/domain/entity"
	"vetcare-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrDNIConflict signals a concurrent creation race on the same DNI.
	// Callers should retry resolution instead of creating a duplicate.
	ErrDNIConflict = errors.New("a client with this dni already exists")

	ErrMascotaNotFound = errors.New("mascota not found")
	ErrMascotaNotOwned = errors.New("mascota belongs to a different client")
)

// ClientInput carries the contact fields submitted with a booking.
type ClientInput struct {
	DNI       string
	Nombre    string
	Telefono  string
	Email     string
	Domicilio string
}

// PetInput carries the pet fields submitted with a booking.
type PetInput struct {
	Nombre string
	Tipo   string
	Raza   string
	Edad   int
	Peso   float64
}

// IdentityService resolves or creates client and pet records inside the
// caller's transaction. Clients are deduplicated by DNI: a DNI miss is the
// normal "create" branch, a DNI hit is field-diffed into the change history.
type IdentityService interface {
	ResolveClient(ctx context.Context, tx *gorm.DB, in ClientInput) (*entity.Client, []entity.FieldChange, error)
	ResolvePet(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID, mascotaID *uuid.UUID, in PetInput) (*entity.Pet, error)
}

type identityService struct {
	log        *logrus.Logger
	clientRepo repository.ClientRepository
	petRepo    repository.PetRepository
}

func NewIdentityService(log *logrus.Logger, clientRepo repository.ClientRepository, petRepo repository.PetRepository) IdentityService {
	return &identityService{
		log:        log,
		clientRepo: clientRepo,
		petRepo:    petRepo,
	}
}

// ResolveClient looks the client up by DNI. On a hit the mutable contact
// fields are diffed; every changed field appends one change-history entry and
// the record is persisted. On a miss a new client is created. Clients without
// a DNI are always created fresh, there is no natural key to match on.
func (s *identityService) ResolveClient(ctx context.Context, tx *gorm.DB, in ClientInput) (*entity.Client, []entity.FieldChange, error) {
	if in.DNI != "" {
		existing, err := s.clientRepo.FindByDNI(tx, in.DNI)
		if err != nil {
			s.log.Warnf("Failed to find client by dni %s: %+v", in.DNI, err)
			return nil, nil, err
		}
		if existing != nil {
			changes := existing.ApplyContactFields(in.Nombre, in.Telefono, in.Email, in.Domicilio, time.Now().UTC())
			if len(changes) == 0 {
				return existing, nil, nil
			}
			if err := s.clientRepo.Update(tx, existing); err != nil {
				s.log.Warnf("Failed to update client %s: %+v", existing.ID, err)
				return nil, nil, err
			}
			s.log.Infof("Client %s matched by dni, %d field(s) updated", existing.ID, len(changes))
			return existing, changes, nil
		}
	}

	client := &entity.Client{
		DNI:       in.DNI,
		Nombre:    in.Nombre,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Domicilio: in.Domicilio,
	}
	if err := s.clientRepo.Create(tx, client); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a creation race on the same DNI
			return nil, nil, ErrDNIConflict
		}
		s.log.Warnf("Failed to create client: %+v", err)
		return nil, nil, err
	}

	s.log.Infof("Client created: id=%s, dni=%s", client.ID, client.DNI)
	return client, nil, nil
}

// ResolvePet updates an existing pet in place when mascotaID is given,
// otherwise creates a new pet under the client. A pet never changes owner.
func (s *identityService) ResolvePet(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID, mascotaID *uuid.UUID, in PetInput) (*entity.Pet, error) {
	if mascotaID != nil && *mascotaID != uuid.Nil {
		pet, err := s.petRepo.FindByID(tx, *mascotaID)
		if err != nil {
			s.log.Warnf("Failed to find mascota %s: %+v", *mascotaID, err)
			return nil, err
		}
		if pet == nil {
			return nil, ErrMascotaNotFound
		}
		if pet.ClienteID != clienteID {
			return nil, ErrMascotaNotOwned
		}

		if in.Nombre != "" {
			pet.Nombre = in.Nombre
		}
		if in.Tipo != "" {
			pet.Tipo = in.Tipo
		}
		if in.Raza != "" {
			pet.Raza = in.Raza
		}
		if in.Edad > 0 {
			pet.Edad = in.Edad
		}
		if in.Peso > 0 {
			pet.Peso = in.Peso
		}

		if err := s.petRepo.Update(tx, pet); err != nil {
			s.log.Warnf("Failed to update mascota %s: %+v", pet.ID, err)
			return nil, err
		}
		return pet, nil
	}

	pet := &entity.Pet{
		ClienteID: clienteID,
		Nombre:    in.Nombre,
		Tipo:      in.Tipo,
		Raza:      in.Raza,
		Edad:      in.Edad,
		Peso:      in.Peso,
	}
	if err := s.petRepo.Create(tx, pet); err != nil {
		s.log.Warnf("Failed to create mascota: %+v", err)
		return nil, err
	}

	s.log.Infof("Mascota created: id=%s, cliente=%s", pet.ID, clienteID)
	return pet, nil
}
