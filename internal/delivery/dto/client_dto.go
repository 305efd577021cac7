package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ClienteInput struct {
	DNI       string `json:"dni" validate:"omitempty,min=6,max=20"`
	Nombre    string `json:"nombre" validate:"required,max=150"`
	Telefono  string `json:"telefono" validate:"required,max=30"`
	Email     string `json:"email" validate:"omitempty,email"`
	Domicilio string `json:"domicilio" validate:"required"`
}

type MascotaInput struct {
	ID     *uuid.UUID `json:"id,omitempty"`
	Nombre string     `json:"nombre" validate:"required_without=ID,max=100"`
	Tipo   string     `json:"tipo" validate:"required_without=ID,max=50"`
	Raza   string     `json:"raza" validate:"max=100"`
	Edad   int        `json:"edad" validate:"gte=0,lte=40"`
	Peso   float64    `json:"peso" validate:"gte=0"`
}

// Response DTOs

type CambioResponse struct {
	Campo         string    `json:"campo"`
	ValorAnterior string    `json:"valor_anterior"`
	ValorNuevo    string    `json:"valor_nuevo"`
	FechaCambio   time.Time `json:"fecha_cambio"`
}

type MascotaResponse struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"nombre"`
	Tipo   string    `json:"tipo"`
	Raza   string    `json:"raza,omitempty"`
	Edad   int       `json:"edad,omitempty"`
	Peso   float64   `json:"peso,omitempty"`
}

type ClienteResponse struct {
	ID        uuid.UUID         `json:"id"`
	DNI       string            `json:"dni,omitempty"`
	Nombre    string            `json:"nombre"`
	Telefono  string            `json:"telefono,omitempty"`
	Email     string            `json:"email,omitempty"`
	Domicilio string            `json:"domicilio,omitempty"`
	Cambios   []CambioResponse  `json:"cambios,omitempty"`
	Mascotas  []MascotaResponse `json:"mascotas,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
