package handler

import (
	"encoding/json"
	"net/http"

	"vetcare-booking/internal/delivery/dto"
	"vetcare-booking/internal/domain/entity"
	"vetcare-booking/internal/service"
	"vetcare-booking/internal/usecase"
	"vetcare-booking/pkg/response"
	"vetcare-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) CreateTurno(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTurnoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	turno, err := h.bookingUsecase.CreateTurno(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidFecha:
			response.Error(w, http.StatusBadRequest, "Invalid fecha, expected YYYY-MM-DD", nil)
		case usecase.ErrInvalidHora:
			response.Error(w, http.StatusBadRequest, "Hora must be an hourly slot between 08:00 and 20:00", nil)
		case usecase.ErrInvalidServicio:
			response.Error(w, http.StatusBadRequest, "Unknown servicio", nil)
		case usecase.ErrFechaPast:
			response.Error(w, http.StatusBadRequest, "Cannot book a past date", nil)
		case usecase.ErrVacunasRequired:
			response.Error(w, http.StatusBadRequest, "Vacunas selection is required for this service", nil)
		case usecase.ErrDayUnavailable:
			response.Conflict(w, "The selected date is not open for booking")
		case usecase.ErrSlotTaken:
			response.Conflict(w, "The selected slot is no longer free")
		case service.ErrDNIConflict:
			response.Conflict(w, "A client with this DNI was registered concurrently, please retry")
		case service.ErrMascotaNotFound:
			response.NotFound(w, "Mascota not found")
		case service.ErrMascotaNotOwned:
			response.Conflict(w, "Mascota belongs to a different client")
		default:
			response.InternalServerError(w, "Failed to create turno")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Turno created successfully", turno)
}

func (h *BookingHandler) CancelTurno(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	turnoID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid turno ID", nil)
		return
	}

	err = h.bookingUsecase.CancelTurnoByClient(r.Context(), turnoID)
	if err != nil {
		switch err {
		case usecase.ErrTurnoNotFound:
			response.NotFound(w, "Turno not found")
		case usecase.ErrCancelTooLate:
			response.Error(w, http.StatusConflict, "Turnos can only be cancelled until the day before the visit", nil)
		case usecase.ErrTurnoNotPending, entity.ErrEstadoFinal:
			response.Error(w, http.StatusConflict, "Turno is no longer pending", nil)
		default:
			response.InternalServerError(w, "Failed to cancel turno")
		}
		return
	}

	response.Success(w, http.StatusOK, "Turno cancelled successfully", nil)
}
