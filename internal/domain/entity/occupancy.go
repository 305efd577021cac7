package entity

import "time"

// Day load buckets derived from the count of non-cancelled turnos.
const (
	CargaBaja  = "baja"  // < 6
	CargaMedia = "media" // 6–9
	CargaAlta  = "alta"  // >= 10
)

// OccupancySummary is a pure derived read over one day's turnos: counts per
// estado, occupancy percentage against the fixed grid and a coarse load
// bucket. Nothing here is persisted.
type OccupancySummary struct {
	Fecha       string  `json:"fecha"`
	Pendientes  int     `json:"pendientes"`
	Completados int     `json:"completados"`
	Cancelados  int     `json:"cancelados"`
	Ocupacion   float64 `json:"ocupacion"`
	Carga       string  `json:"carga"`
}

// SummarizeDay computes the occupancy summary for one date's turnos.
func SummarizeDay(fecha time.Time, turnos []Appointment) OccupancySummary {
	summary := OccupancySummary{Fecha: DateKey(fecha)}

	for _, t := range turnos {
		switch t.Estado {
		case StatusPendiente:
			summary.Pendientes++
		case StatusCompletado:
			summary.Completados++
		case StatusCancelado:
			summary.Cancelados++
		}
	}

	active := summary.Pendientes + summary.Completados
	summary.Ocupacion = float64(active) / float64(SlotsPerDay) * 100

	switch {
	case active >= 10:
		summary.Carga = CargaAlta
	case active >= 6:
		summary.Carga = CargaMedia
	default:
		summary.Carga = CargaBaja
	}

	return summary
}
