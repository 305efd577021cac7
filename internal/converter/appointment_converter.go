package converter

import (
	"vetcare-booking/internal/delivery/dto"
	"vetcare-booking/internal/domain/entity"
)

// TurnoToResponse converts an Appointment entity to a TurnoResponse DTO
func TurnoToResponse(turno *entity.Appointment) *dto.TurnoResponse {
	if turno == nil {
		return nil
	}

	return &dto.TurnoResponse{
		ID:            turno.ID,
		ClienteID:     turno.ClienteID,
		MascotaID:     turno.MascotaID,
		NombreCliente: turno.NombreCliente,
		Telefono:      turno.Telefono,
		Email:         turno.Email,
		Domicilio:     turno.Domicilio,
		NombreMascota: turno.NombreMascota,
		TipoMascota:   turno.TipoMascota,
		Motivo:        turno.Motivo,
		Fecha:         entity.DateKey(turno.Fecha),
		Hora:          turno.Hora,
		Servicio:      string(turno.Servicio),
		Estado:        string(turno.Estado),
		Vacunas:       []string(turno.Vacunas),
		CreatedAt:     turno.CreatedAt,
		UpdatedAt:     turno.UpdatedAt,
	}
}

// TurnosToResponses converts a slice of Appointment entities
func TurnosToResponses(turnos []entity.Appointment) []dto.TurnoResponse {
	responses := make([]dto.TurnoResponse, len(turnos))
	for i, turno := range turnos {
		resp := TurnoToResponse(&turno)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// OccupancyToResponse converts the derived day summary
func OccupancyToResponse(summary entity.OccupancySummary) *dto.OccupancyResponse {
	return &dto.OccupancyResponse{
		Fecha:       summary.Fecha,
		Pendientes:  summary.Pendientes,
		Completados: summary.Completados,
		Cancelados:  summary.Cancelados,
		Ocupacion:   summary.Ocupacion,
		Carga:       summary.Carga,
	}
}
