package handler

import (
	"encoding/json"
	"net/http"

	"vetcare-booking/internal/delivery/dto"
	"vetcare-booking/internal/usecase"
	"vetcare-booking/pkg/response"
	"vetcare-booking/pkg/validator"
)

type BlockedDateHandler struct {
	blockedDateUsecase usecase.BlockedDateUsecase
	validator          *validator.CustomValidator
}

func NewBlockedDateHandler(blockedDateUsecase usecase.BlockedDateUsecase, validator *validator.CustomValidator) *BlockedDateHandler {
	return &BlockedDateHandler{
		blockedDateUsecase: blockedDateUsecase,
		validator:          validator,
	}
}

func (h *BlockedDateHandler) GetBlockedDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.blockedDateUsecase.GetBlockedDates(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get blocked dates")
		return
	}

	response.Success(w, http.StatusOK, "Blocked dates retrieved successfully", dates)
}

func (h *BlockedDateHandler) BlockDates(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	dates, err := h.blockedDateUsecase.BlockDates(r.Context(), req)
	if err != nil {
		h.writeMutationError(w, err, "Failed to block dates")
		return
	}

	response.Success(w, http.StatusOK, "Dates blocked successfully", dates)
}

func (h *BlockedDateHandler) UnblockDates(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	dates, err := h.blockedDateUsecase.UnblockDates(r.Context(), req)
	if err != nil {
		h.writeMutationError(w, err, "Failed to unblock dates")
		return
	}

	response.Success(w, http.StatusOK, "Dates unblocked successfully", dates)
}

func (h *BlockedDateHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*dto.BlockDatesRequest, bool) {
	var req dto.BlockDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return nil, false
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}

	return &req, true
}

func (h *BlockedDateHandler) writeMutationError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrInvalidFecha:
		response.Error(w, http.StatusBadRequest, "Invalid fecha, expected YYYY-MM-DD", nil)
	case usecase.ErrEmptyRequest:
		response.Error(w, http.StatusBadRequest, "Either fecha or fecha_inicio/fecha_fin is required", nil)
	case usecase.ErrInvalidRange:
		response.Error(w, http.StatusBadRequest, "fecha_fin must not precede fecha_inicio", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
