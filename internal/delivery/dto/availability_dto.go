package dto

// Response DTOs

type AvailabilityResponse struct {
	Fecha      string   `json:"fecha"`
	Disponible bool     `json:"disponible"`
	Horarios   []string `json:"horarios"`
}

type OccupancyResponse struct {
	Fecha       string  `json:"fecha"`
	Pendientes  int     `json:"pendientes"`
	Completados int     `json:"completados"`
	Cancelados  int     `json:"cancelados"`
	Ocupacion   float64 `json:"ocupacion"`
	Carga       string  `json:"carga"`
}
