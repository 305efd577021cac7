package service

import (
	"context"
	"fmt"

	"vetcare-booking/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// BookingNotice is the stable payload handed to the notification collaborator
// once a turno is committed.
type BookingNotice struct {
	NombreCliente string
	NombreMascota string
	TipoMascota   string
	Servicio      string
	Motivo        string
	Fecha         string
	Hora          string
	Email         string
	Domicilio     string
}

// NotificationService sends a best-effort booking confirmation. Failures are
// reported to the caller, who logs them as warnings; the booking itself is
// already committed.
type NotificationService interface {
	SendConfirmation(ctx context.Context, notice BookingNotice) error
}

type sendGridNotificationService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       *logrus.Logger
}

func NewSendGridNotificationService(cfg config.MailConfig, log *logrus.Logger) NotificationService {
	if cfg.SendGridAPIKey == "" {
		log.Warn("SendGrid API key not configured, booking confirmations disabled")
		return &noopNotificationService{log: log}
	}
	return &sendGridNotificationService{
		client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		log:       log,
	}
}

func (s *sendGridNotificationService) SendConfirmation(ctx context.Context, notice BookingNotice) error {
	if notice.Email == "" {
		s.log.Debug("Booking has no email, skipping confirmation")
		return nil
	}

	subject := fmt.Sprintf("Turno confirmado: %s el %s a las %s", notice.NombreMascota, notice.Fecha, notice.Hora)
	body := fmt.Sprintf(
		"Hola %s,\n\n"+
			"Tu turno a domicilio quedó confirmado.\n\n"+
			"Mascota: %s (%s)\n"+
			"Servicio: %s\n"+
			"Motivo: %s\n"+
			"Fecha: %s %s\n"+
			"Domicilio: %s\n\n"+
			"Si necesitás cancelar, hacelo hasta el día anterior a la visita.\n",
		notice.NombreCliente, notice.NombreMascota, notice.TipoMascota,
		notice.Servicio, notice.Motivo, notice.Fecha, notice.Hora, notice.Domicilio,
	)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(notice.NombreCliente, notice.Email)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	s.log.Infof("Booking confirmation sent to %s", notice.Email)
	return nil
}

// noopNotificationService logs instead of sending when mail is not configured.
type noopNotificationService struct {
	log *logrus.Logger
}

func (s *noopNotificationService) SendConfirmation(ctx context.Context, notice BookingNotice) error {
	s.log.Infof("Mail disabled, would send confirmation to %s for %s %s", notice.Email, notice.Fecha, notice.Hora)
	return nil
}
