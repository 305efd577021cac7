package handler

import (
	"encoding/json"
	"net/http"

	"vetcare-booking/internal/delivery/dto"
	"vetcare-booking/internal/domain/entity"
	"vetcare-booking/internal/usecase"
	"vetcare-booking/pkg/response"
	"vetcare-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AdminTurnoHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewAdminTurnoHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *AdminTurnoHandler {
	return &AdminTurnoHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *AdminTurnoHandler) GetTurnosByFecha(w http.ResponseWriter, r *http.Request) {
	fecha := r.URL.Query().Get("fecha")
	if fecha == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter fecha is required", nil)
		return
	}

	turnos, err := h.bookingUsecase.GetTurnosByFecha(r.Context(), fecha)
	if err != nil {
		switch err {
		case usecase.ErrInvalidFecha:
			response.Error(w, http.StatusBadRequest, "Invalid fecha, expected YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get turnos")
		}
		return
	}

	response.Success(w, http.StatusOK, "Turnos retrieved successfully", turnos)
}

func (h *AdminTurnoHandler) CompleteTurno(w http.ResponseWriter, r *http.Request) {
	turnoID, ok := parseTurnoID(w, r)
	if !ok {
		return
	}

	turno, err := h.bookingUsecase.CompleteTurno(r.Context(), turnoID)
	if err != nil {
		switch err {
		case usecase.ErrTurnoNotFound:
			response.NotFound(w, "Turno not found")
		case entity.ErrEstadoFinal:
			response.Conflict(w, "Turno is no longer pending")
		default:
			response.InternalServerError(w, "Failed to complete turno")
		}
		return
	}

	response.Success(w, http.StatusOK, "Turno completed successfully", turno)
}

func (h *AdminTurnoHandler) CancelTurno(w http.ResponseWriter, r *http.Request) {
	turnoID, ok := parseTurnoID(w, r)
	if !ok {
		return
	}

	err := h.bookingUsecase.CancelTurnoByAdmin(r.Context(), turnoID)
	if err != nil {
		switch err {
		case usecase.ErrTurnoNotFound:
			response.NotFound(w, "Turno not found")
		case entity.ErrEstadoFinal:
			response.Conflict(w, "Turno is no longer pending")
		default:
			response.InternalServerError(w, "Failed to cancel turno")
		}
		return
	}

	response.Success(w, http.StatusOK, "Turno cancelled successfully", nil)
}

func (h *AdminTurnoHandler) RescheduleTurno(w http.ResponseWriter, r *http.Request) {
	turnoID, ok := parseTurnoID(w, r)
	if !ok {
		return
	}

	var req dto.RescheduleTurnoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	turno, err := h.bookingUsecase.RescheduleTurno(r.Context(), turnoID, &req)
	if err != nil {
		switch err {
		case usecase.ErrTurnoNotFound:
			response.NotFound(w, "Turno not found")
		case usecase.ErrInvalidFecha:
			response.Error(w, http.StatusBadRequest, "Invalid fecha, expected YYYY-MM-DD", nil)
		case usecase.ErrInvalidHora:
			response.Error(w, http.StatusBadRequest, "Hora must be an hourly slot between 08:00 and 20:00", nil)
		case usecase.ErrFechaPast:
			response.Error(w, http.StatusBadRequest, "Cannot reschedule to a past date", nil)
		case usecase.ErrTurnoNotPending:
			response.Conflict(w, "Only pending turnos can be rescheduled")
		case usecase.ErrDayUnavailable:
			response.Conflict(w, "The selected date is not open for booking")
		case usecase.ErrSlotTaken:
			response.Conflict(w, "The selected slot is no longer free")
		default:
			response.InternalServerError(w, "Failed to reschedule turno")
		}
		return
	}

	response.Success(w, http.StatusOK, "Turno rescheduled successfully", turno)
}

func (h *AdminTurnoHandler) DeleteTurno(w http.ResponseWriter, r *http.Request) {
	turnoID, ok := parseTurnoID(w, r)
	if !ok {
		return
	}

	err := h.bookingUsecase.DeleteTurno(r.Context(), turnoID)
	if err != nil {
		switch err {
		case usecase.ErrTurnoNotFound:
			response.NotFound(w, "Turno not found")
		default:
			response.InternalServerError(w, "Failed to delete turno")
		}
		return
	}

	response.Success(w, http.StatusOK, "Turno deleted successfully", nil)
}

func parseTurnoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	turnoID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid turno ID", nil)
		return uuid.Nil, false
	}
	return turnoID, true
}
