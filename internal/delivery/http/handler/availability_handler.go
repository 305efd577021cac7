package handler

import (
	"net/http"

	"vetcare-booking/internal/usecase"
	"vetcare-booking/pkg/response"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
	}
}

func (h *AvailabilityHandler) GetDayAvailability(w http.ResponseWriter, r *http.Request) {
	fecha := r.URL.Query().Get("fecha")
	if fecha == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter fecha is required", nil)
		return
	}

	availability, err := h.availabilityUsecase.GetDayAvailability(r.Context(), fecha)
	if err != nil {
		switch err {
		case usecase.ErrInvalidFecha:
			response.Error(w, http.StatusBadRequest, "Invalid fecha, expected YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

func (h *AvailabilityHandler) GetDaySummary(w http.ResponseWriter, r *http.Request) {
	fecha := r.URL.Query().Get("fecha")
	if fecha == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter fecha is required", nil)
		return
	}

	summary, err := h.availabilityUsecase.GetDaySummary(r.Context(), fecha)
	if err != nil {
		switch err {
		case usecase.ErrInvalidFecha:
			response.Error(w, http.StatusBadRequest, "Invalid fecha, expected YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get occupancy summary")
		}
		return
	}

	response.Success(w, http.StatusOK, "Occupancy summary retrieved successfully", summary)
}
