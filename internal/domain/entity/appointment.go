package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the turno state machine.
// Transitions are one-way: pendiente → completado | cancelado.
type AppointmentStatus string

const (
	StatusPendiente  AppointmentStatus = "pendiente"
	StatusCompletado AppointmentStatus = "completado"
	StatusCancelado  AppointmentStatus = "cancelado"
)

// ServiceType is the kind of home visit being booked
type ServiceType string

const (
	ServiceConsultaGeneral ServiceType = "consulta-general"
	ServiceTelemedicina    ServiceType = "telemedicina"
	ServiceVacunacion      ServiceType = "vacunacion"
	ServiceUrgencias       ServiceType = "urgencias"
)

// IsValidService reports whether s is one of the bookable services.
func IsValidService(s ServiceType) bool {
	switch s {
	case ServiceConsultaGeneral, ServiceTelemedicina, ServiceVacunacion, ServiceUrgencias:
		return true
	}
	return false
}

var (
	ErrEstadoFinal = errors.New("turno is already in a terminal state")
)

// Appointment is a scheduled home visit (turno). It carries live foreign keys
// to the client and pet plus a denormalized snapshot of both, taken at booking
// time. Legacy rows predating pet IDs have MascotaID = uuid.Nil and are matched
// by snapshot name (see the clinical timeline two-tier resolution).
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClienteID uuid.UUID `gorm:"type:uuid;index" json:"cliente_id"`
	MascotaID uuid.UUID `gorm:"type:uuid;index" json:"mascota_id"`

	// Denormalized snapshot at booking time
	NombreCliente string `gorm:"type:varchar(150)" json:"nombre_cliente"`
	Telefono      string `gorm:"type:varchar(30)" json:"telefono"`
	Email         string `gorm:"type:varchar(150)" json:"email"`
	Domicilio     string `gorm:"type:text" json:"domicilio"`
	NombreMascota string `gorm:"type:varchar(100)" json:"nombre_mascota"`
	TipoMascota   string `gorm:"type:varchar(50)" json:"tipo_mascota"`
	Motivo        string `gorm:"type:text" json:"motivo"`

	Fecha    time.Time         `gorm:"type:date;not null;index" json:"fecha"`
	Hora     string            `gorm:"type:varchar(5);not null" json:"hora"`
	Servicio ServiceType       `gorm:"type:varchar(30);not null" json:"servicio"`
	Estado   AppointmentStatus `gorm:"type:varchar(20);not null;default:'pendiente';index" json:"estado"`
	Vacunas  StringList        `gorm:"type:jsonb" json:"vacunas,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "turnos"
}

// IsPendiente checks if the turno is still pending
func (a *Appointment) IsPendiente() bool {
	return a.Estado == StatusPendiente
}

// IsCancelado checks if the turno is cancelled
func (a *Appointment) IsCancelado() bool {
	return a.Estado == StatusCancelado
}

// Complete transitions pendiente → completado
func (a *Appointment) Complete() error {
	if a.Estado != StatusPendiente {
		return ErrEstadoFinal
	}
	a.Estado = StatusCompletado
	return nil
}

// Cancel transitions pendiente → cancelado. Cancellation is terminal: a
// cancelled turno is never re-activated, its slot simply becomes free again.
func (a *Appointment) Cancel() error {
	if a.Estado != StatusPendiente {
		return ErrEstadoFinal
	}
	a.Estado = StatusCancelado
	return nil
}

// CanClientCancel reports whether the owner may still cancel: only pending
// turnos scheduled for tomorrow or later. Admin cancellation has no date
// restriction.
func (a *Appointment) CanClientCancel(today time.Time) bool {
	if a.Estado != StatusPendiente {
		return false
	}
	tomorrow := today.Truncate(24 * time.Hour).AddDate(0, 0, 1)
	return !a.Fecha.Before(tomorrow)
}

// RequiresVaccineSelection reports whether a vaccine list is mandatory for
// the given service and species. Only perros and gatos have a managed vaccine
// catalogue; other species book vacunacion visits without a selection.
func RequiresVaccineSelection(servicio ServiceType, tipoMascota string) bool {
	if servicio != ServiceVacunacion {
		return false
	}
	tipo := strings.ToLower(strings.TrimSpace(tipoMascota))
	return tipo == SpeciesPerro || tipo == SpeciesGato
}

// StringList is a JSONB-backed string slice (vacunas)
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := StringList{}
	err := json.Unmarshal(bytes, &result)
	*l = result
	return err
}

// NormalizePetName lowercases and trims a snapshot pet name for the legacy
// name-based appointment match.
func NormalizePetName(nombre string) string {
	return strings.ToLower(strings.TrimSpace(nombre))
}
