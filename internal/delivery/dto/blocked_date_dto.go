package dto

// Request DTOs

// BlockDatesRequest carries either a single fecha or an inclusive range.
type BlockDatesRequest struct {
	Fecha       string `json:"fecha,omitempty" validate:"required_without=FechaInicio"`
	FechaInicio string `json:"fecha_inicio,omitempty" validate:"required_with=FechaFin"`
	FechaFin    string `json:"fecha_fin,omitempty" validate:"required_with=FechaInicio"`
}

// Response DTOs

type BlockedDatesResponse struct {
	Fechas  []string `json:"fechas"`
	Total   int      `json:"total"`
	Version int      `json:"version"`
}
