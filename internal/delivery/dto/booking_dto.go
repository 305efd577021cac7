package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateTurnoRequest struct {
	Cliente  ClienteInput `json:"cliente" validate:"required"`
	Mascota  MascotaInput `json:"mascota" validate:"required"`
	Fecha    string       `json:"fecha" validate:"required"`
	Hora     string       `json:"hora" validate:"required"`
	Servicio string       `json:"servicio" validate:"required"`
	Motivo   string       `json:"motivo" validate:"max=500"`
	Vacunas  []string     `json:"vacunas,omitempty"`
}

type RescheduleTurnoRequest struct {
	Fecha string `json:"fecha" validate:"required"`
	Hora  string `json:"hora" validate:"required"`
}

// Response DTOs

type TurnoResponse struct {
	ID            uuid.UUID `json:"id"`
	ClienteID     uuid.UUID `json:"cliente_id"`
	MascotaID     uuid.UUID `json:"mascota_id,omitempty"`
	NombreCliente string    `json:"nombre_cliente"`
	Telefono      string    `json:"telefono,omitempty"`
	Email         string    `json:"email,omitempty"`
	Domicilio     string    `json:"domicilio,omitempty"`
	NombreMascota string    `json:"nombre_mascota"`
	TipoMascota   string    `json:"tipo_mascota,omitempty"`
	Motivo        string    `json:"motivo,omitempty"`
	Fecha         string    `json:"fecha"`
	Hora          string    `json:"hora"`
	Servicio      string    `json:"servicio"`
	Estado        string    `json:"estado"`
	Vacunas       []string  `json:"vacunas,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TurnoListResponse struct {
	Turnos  []TurnoResponse    `json:"turnos"`
	Total   int                `json:"total"`
	Resumen *OccupancyResponse `json:"resumen,omitempty"`
}
