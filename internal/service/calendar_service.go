package service

import (
	"context"
	"fmt"
	"time"

	"vetcare-booking/config"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// VisitEvent is the payload handed to the calendar collaborator for a
// committed turno.
type VisitEvent struct {
	NombreMascota string
	NombreCliente string
	Motivo        string
	Fecha         string // YYYY-MM-DD
	Hora          string // HH:MM
	Servicio      string
}

// Visits are always one hour, with a reminder 14 hours before the start.
const (
	visitDuration   = 60 * time.Minute
	reminderMinutes = 14 * 60
)

// CalendarService creates an external calendar event for a visit.
// Best-effort: failures never affect the committed booking.
type CalendarService interface {
	CreateVisitEvent(ctx context.Context, event VisitEvent) error
}

type googleCalendarService struct {
	svc        *calendar.Service
	calendarID string
	timezone   string
	log        *logrus.Logger
}

// NewGoogleCalendarService builds the Google Calendar collaborator. When no
// credentials are configured it degrades to a logging no-op.
func NewGoogleCalendarService(ctx context.Context, cfg config.CalendarConfig, log *logrus.Logger) (CalendarService, error) {
	if cfg.CredentialsFile == "" || cfg.CalendarID == "" {
		log.Warn("Calendar credentials not configured, visit events disabled")
		return &noopCalendarService{log: log}, nil
	}

	svc, err := calendar.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to init calendar client: %w", err)
	}

	return &googleCalendarService{
		svc:        svc,
		calendarID: cfg.CalendarID,
		timezone:   cfg.Timezone,
		log:        log,
	}, nil
}

func (s *googleCalendarService) CreateVisitEvent(ctx context.Context, event VisitEvent) error {
	loc, err := time.LoadLocation(s.timezone)
	if err != nil {
		return fmt.Errorf("invalid calendar timezone %q: %w", s.timezone, err)
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", event.Fecha+" "+event.Hora, loc)
	if err != nil {
		return fmt.Errorf("invalid visit datetime: %w", err)
	}
	end := start.Add(visitDuration)

	calEvent := &calendar.Event{
		Summary:     fmt.Sprintf("Visita: %s (%s)", event.NombreMascota, event.NombreCliente),
		Description: fmt.Sprintf("Servicio: %s\nMotivo: %s", event.Servicio, event.Motivo),
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: s.timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: s.timezone,
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: reminderMinutes},
				{Method: "email", Minutes: reminderMinutes},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	if _, err := s.svc.Events.Insert(s.calendarID, calEvent).Context(ctx).Do(); err != nil {
		return fmt.Errorf("calendar insert failed: %w", err)
	}

	s.log.Infof("Calendar event created for %s %s", event.Fecha, event.Hora)
	return nil
}

type noopCalendarService struct {
	log *logrus.Logger
}

func (s *noopCalendarService) CreateVisitEvent(ctx context.Context, event VisitEvent) error {
	s.log.Infof("Calendar disabled, would create event for %s %s", event.Fecha, event.Hora)
	return nil
}
