package http

import (
	"net/http"

	"vetcare-booking/internal/delivery/http/handler"
	"vetcare-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	availabilityHandler *handler.AvailabilityHandler
	bookingHandler      *handler.BookingHandler
	clientHandler       *handler.ClientHandler
	timelineHandler     *handler.TimelineHandler
	adminTurnoHandler   *handler.AdminTurnoHandler
	blockedDateHandler  *handler.BlockedDateHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	availabilityHandler *handler.AvailabilityHandler,
	bookingHandler *handler.BookingHandler,
	clientHandler *handler.ClientHandler,
	timelineHandler *handler.TimelineHandler,
	adminTurnoHandler *handler.AdminTurnoHandler,
	blockedDateHandler *handler.BlockedDateHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		availabilityHandler: availabilityHandler,
		bookingHandler:      bookingHandler,
		clientHandler:       clientHandler,
		timelineHandler:     timelineHandler,
		adminTurnoHandler:   adminTurnoHandler,
		blockedDateHandler:  blockedDateHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Booking form routes (public)
	api.HandleFunc("/disponibilidad", r.availabilityHandler.GetDayAvailability).Methods(http.MethodGet)
	api.HandleFunc("/clientes/dni/{dni}", r.clientHandler.GetClientByDNI).Methods(http.MethodGet)
	api.HandleFunc("/turnos", r.bookingHandler.CreateTurno).Methods(http.MethodPost)
	api.HandleFunc("/turnos/{id}/cancelar", r.bookingHandler.CancelTurno).Methods(http.MethodPost)
	api.HandleFunc("/mascotas/{id}/libreta", r.timelineHandler.GetLibreta).Methods(http.MethodGet)

	// Back-office routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.RequireAdmin)

	// Turno management (admin)
	admin.HandleFunc("/turnos", r.adminTurnoHandler.GetTurnosByFecha).Methods(http.MethodGet)
	admin.HandleFunc("/ocupacion", r.availabilityHandler.GetDaySummary).Methods(http.MethodGet)
	admin.HandleFunc("/turnos/{id}/completar", r.adminTurnoHandler.CompleteTurno).Methods(http.MethodPost)
	admin.HandleFunc("/turnos/{id}/cancelar", r.adminTurnoHandler.CancelTurno).Methods(http.MethodPost)
	admin.HandleFunc("/turnos/{id}/reprogramar", r.adminTurnoHandler.RescheduleTurno).Methods(http.MethodPut)
	admin.HandleFunc("/turnos/{id}", r.adminTurnoHandler.DeleteTurno).Methods(http.MethodDelete)

	// Blocked dates (admin)
	admin.HandleFunc("/fechas-bloqueadas", r.blockedDateHandler.GetBlockedDates).Methods(http.MethodGet)
	admin.HandleFunc("/fechas-bloqueadas", r.blockedDateHandler.BlockDates).Methods(http.MethodPost)
	admin.HandleFunc("/fechas-bloqueadas", r.blockedDateHandler.UnblockDates).Methods(http.MethodDelete)

	// Clinical records (admin)
	admin.HandleFunc("/mascotas/{id}/historias", r.timelineHandler.CreateHistoria).Methods(http.MethodPost)
	admin.HandleFunc("/historias/{id}", r.timelineHandler.UpdateHistoria).Methods(http.MethodPut)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
