package converter

import (
	"vetcare-booking/internal/delivery/dto"
	"vetcare-booking/internal/domain/entity"
)

// ClientToResponse converts a Client entity to a ClienteResponse DTO
func ClientToResponse(client *entity.Client) *dto.ClienteResponse {
	if client == nil {
		return nil
	}

	response := &dto.ClienteResponse{
		ID:        client.ID,
		DNI:       client.DNI,
		Nombre:    client.Nombre,
		Telefono:  client.Telefono,
		Email:     client.Email,
		Domicilio: client.Domicilio,
		CreatedAt: client.CreatedAt,
	}

	for _, cambio := range client.Cambios {
		response.Cambios = append(response.Cambios, dto.CambioResponse{
			Campo:         cambio.Campo,
			ValorAnterior: cambio.ValorAnterior,
			ValorNuevo:    cambio.ValorNuevo,
			FechaCambio:   cambio.FechaCambio,
		})
	}

	for _, pet := range client.Mascotas {
		response.Mascotas = append(response.Mascotas, *PetToResponse(&pet))
	}

	return response
}

// PetToResponse converts a Pet entity to a MascotaResponse DTO
func PetToResponse(pet *entity.Pet) *dto.MascotaResponse {
	if pet == nil {
		return nil
	}
	return &dto.MascotaResponse{
		ID:     pet.ID,
		Nombre: pet.Nombre,
		Tipo:   pet.Tipo,
		Raza:   pet.Raza,
		Edad:   pet.Edad,
		Peso:   pet.Peso,
	}
}
