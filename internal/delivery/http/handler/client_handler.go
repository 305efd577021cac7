package handler

import (
	"net/http"
	"strings"

	"vetcare-booking/internal/usecase"
	"vetcare-booking/pkg/response"

	"github.com/gorilla/mux"
)

type ClientHandler struct {
	clientLookupUsecase usecase.ClientLookupUsecase
}

func NewClientHandler(clientLookupUsecase usecase.ClientLookupUsecase) *ClientHandler {
	return &ClientHandler{
		clientLookupUsecase: clientLookupUsecase,
	}
}

// GetClientByDNI prefills the booking form. An unknown DNI is not an error,
// the form simply starts empty.
func (h *ClientHandler) GetClientByDNI(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dni := strings.TrimSpace(vars["dni"])
	if dni == "" {
		response.Error(w, http.StatusBadRequest, "DNI is required", nil)
		return
	}

	client, err := h.clientLookupUsecase.GetClientByDNI(r.Context(), dni)
	if err != nil {
		response.InternalServerError(w, "Failed to look up client")
		return
	}

	if client == nil {
		response.Success(w, http.StatusOK, "No client registered with this DNI", nil)
		return
	}

	response.Success(w, http.StatusOK, "Client retrieved successfully", client)
}
