package converter

import (
	"vetcare-booking/internal/delivery/dto"
	"vetcare-booking/internal/domain/entity"
)

// HistoriaToResponse converts a ClinicalNote entity to a HistoriaResponse DTO
func HistoriaToResponse(note *entity.ClinicalNote) *dto.HistoriaResponse {
	if note == nil {
		return nil
	}

	response := &dto.HistoriaResponse{
		ID:            note.ID,
		MascotaID:     note.MascotaID,
		FechaAtencion: entity.DateKey(note.FechaAtencion),
		Motivo:        note.Motivo,
		Diagnostico:   note.Diagnostico,
		Tratamiento:   note.Tratamiento,
		Observaciones: note.Observaciones,
		CreatedAt:     note.CreatedAt,
	}
	if note.ProximaVisita != nil {
		response.ProximaVisita = entity.DateKey(*note.ProximaVisita)
	}
	return response
}
