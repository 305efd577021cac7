package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateHistoriaRequest struct {
	FechaAtencion string     `json:"fecha_atencion" validate:"required"`
	Motivo        string     `json:"motivo" validate:"max=500"`
	Diagnostico   string     `json:"diagnostico" validate:"required"`
	Tratamiento   string     `json:"tratamiento" validate:"max=1000"`
	Observaciones string     `json:"observaciones" validate:"max=1000"`
	ProximaVisita string     `json:"proxima_visita,omitempty"`
	TurnoID       *uuid.UUID `json:"turno_id,omitempty"`
}

type UpdateHistoriaRequest struct {
	FechaAtencion string `json:"fecha_atencion,omitempty"`
	Motivo        string `json:"motivo,omitempty" validate:"max=500"`
	Diagnostico   string `json:"diagnostico,omitempty"`
	Tratamiento   string `json:"tratamiento,omitempty" validate:"max=1000"`
	Observaciones string `json:"observaciones,omitempty" validate:"max=1000"`
	ProximaVisita string `json:"proxima_visita,omitempty"`
}

// Response DTOs

type HistoriaResponse struct {
	ID            uuid.UUID `json:"id"`
	MascotaID     uuid.UUID `json:"mascota_id"`
	FechaAtencion string    `json:"fecha_atencion"`
	Motivo        string    `json:"motivo,omitempty"`
	Diagnostico   string    `json:"diagnostico"`
	Tratamiento   string    `json:"tratamiento,omitempty"`
	Observaciones string    `json:"observaciones,omitempty"`
	ProximaVisita string    `json:"proxima_visita,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// TimelineEntryResponse is one row of the libreta sanitaria: either a turno
// or a historia, tagged by Tipo and classified relative to "now".
type TimelineEntryResponse struct {
	Tipo          string            `json:"tipo"` // "turno" | "historia"
	Fecha         string            `json:"fecha"`
	Hora          string            `json:"hora,omitempty"`
	Clasificacion string            `json:"clasificacion"` // "proximo" | "realizado"
	Turno         *TurnoResponse    `json:"turno,omitempty"`
	Historia      *HistoriaResponse `json:"historia,omitempty"`
}

type TimelineResponse struct {
	MascotaID uuid.UUID               `json:"mascota_id"`
	Nombre    string                  `json:"nombre"`
	Entradas  []TimelineEntryResponse `json:"entradas"`
	Total     int                     `json:"total"`
}
