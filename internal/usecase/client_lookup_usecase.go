package usecase

import (
	"context"

	"vetcare-booking/internal/converter"
	"vetcare-booking/internal/delivery/dto"
	"vetcare-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ClientLookupUsecase serves the booking-form prefill: look a client up by
// DNI together with their mascotas. A miss is not an error, it just means
// the form starts blank and the booking will create a new client.
type ClientLookupUsecase interface {
	GetClientByDNI(ctx context.Context, dni string) (*dto.ClienteResponse, error)
}

type clientLookupUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	clientRepo repository.ClientRepository
}

func NewClientLookupUsecase(db *gorm.DB, log *logrus.Logger, clientRepo repository.ClientRepository) ClientLookupUsecase {
	return &clientLookupUsecase{
		db:         db,
		log:        log,
		clientRepo: clientRepo,
	}
}

// GetClientByDNI returns (nil, nil) on a miss.
func (u *clientLookupUsecase) GetClientByDNI(ctx context.Context, dni string) (*dto.ClienteResponse, error) {
	client, err := u.clientRepo.FindByDNIWithPets(u.db.WithContext(ctx), dni)
	if err != nil {
		u.log.Warnf("Failed to find client by dni %s: %+v", dni, err)
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return converter.ClientToResponse(client), nil
}
