package handler

import (
	"encoding/json"
	"net/http"

	"vetcare-booking/internal/delivery/dto"
	"vetcare-booking/internal/usecase"
	"vetcare-booking/pkg/response"
	"vetcare-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TimelineHandler struct {
	timelineUsecase usecase.ClinicalTimelineUsecase
	validator       *validator.CustomValidator
}

func NewTimelineHandler(timelineUsecase usecase.ClinicalTimelineUsecase, validator *validator.CustomValidator) *TimelineHandler {
	return &TimelineHandler{
		timelineUsecase: timelineUsecase,
		validator:       validator,
	}
}

func (h *TimelineHandler) GetLibreta(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mascotaID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid mascota ID", nil)
		return
	}

	timeline, err := h.timelineUsecase.BuildTimeline(r.Context(), mascotaID)
	if err != nil {
		switch err {
		case usecase.ErrMascotaNotFound:
			response.NotFound(w, "Mascota not found")
		default:
			response.InternalServerError(w, "Failed to build libreta")
		}
		return
	}

	response.Success(w, http.StatusOK, "Libreta retrieved successfully", timeline)
}

func (h *TimelineHandler) CreateHistoria(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mascotaID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid mascota ID", nil)
		return
	}

	var req dto.CreateHistoriaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	historia, err := h.timelineUsecase.CreateHistoria(r.Context(), mascotaID, &req)
	if err != nil {
		switch err {
		case usecase.ErrMascotaNotFound:
			response.NotFound(w, "Mascota not found")
		case usecase.ErrInvalidFecha:
			response.Error(w, http.StatusBadRequest, "Invalid fecha, expected YYYY-MM-DD", nil)
		case usecase.ErrTurnoNotFound:
			response.NotFound(w, "Turno not found")
		default:
			response.InternalServerError(w, "Failed to create historia")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Historia created successfully", historia)
}

func (h *TimelineHandler) UpdateHistoria(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	historiaID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid historia ID", nil)
		return
	}

	var req dto.UpdateHistoriaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	historia, err := h.timelineUsecase.UpdateHistoria(r.Context(), historiaID, &req)
	if err != nil {
		switch err {
		case usecase.ErrHistoriaNotFound:
			response.NotFound(w, "Historia not found")
		case usecase.ErrInvalidFecha:
			response.Error(w, http.StatusBadRequest, "Invalid fecha, expected YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to update historia")
		}
		return
	}

	response.Success(w, http.StatusOK, "Historia updated successfully", historia)
}
