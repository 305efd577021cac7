package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vetcare-booking/config"
	deliveryHttp "vetcare-booking/internal/delivery/http"
	"vetcare-booking/internal/delivery/http/handler"
	"vetcare-booking/internal/delivery/http/middleware"
	"vetcare-booking/internal/infrastructure/cache"
	"vetcare-booking/internal/infrastructure/database"
	"vetcare-booking/internal/repository"
	"vetcare-booking/internal/service"
	"vetcare-booking/internal/usecase"
	"vetcare-booking/pkg/jwt"
	"vetcare-booking/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config       *config.Config
	DB           *gorm.DB
	RedisClient  *redis.Client
	Server       *http.Server
	Reservations *service.SlotReservationService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations before opening the pooled connection
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, reservations, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server
	app.Reservations = reservations

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.SlotReservationService, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	clientRepo := repository.NewClientRepository()
	petRepo := repository.NewPetRepository()
	turnoRepo := repository.NewAppointmentRepository()
	noteRepo := repository.NewClinicalNoteRepository()
	blockedDateRepo := repository.NewBlockedDateRepository()

	// Initialize services
	identityService := service.NewIdentityService(log, clientRepo, petRepo)
	reservations := service.NewSlotReservationService(db, redisClient, log, turnoRepo)
	notificationService := service.NewSendGridNotificationService(cfg.Mail, log)
	calendarService, err := service.NewGoogleCalendarService(context.Background(), cfg.Calendar, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init calendar service: %w", err)
	}

	// Initialize usecases
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, turnoRepo, blockedDateRepo)
	blockedDateUsecase := usecase.NewBlockedDateUsecase(db, log, blockedDateRepo)
	bookingUsecase := usecase.NewBookingUsecase(db, log, turnoRepo, blockedDateRepo, identityService, reservations, notificationService, calendarService)
	timelineUsecase := usecase.NewClinicalTimelineUsecase(db, log, petRepo, noteRepo, turnoRepo)
	clientLookupUsecase := usecase.NewClientLookupUsecase(db, log, clientRepo)

	// Initialize handlers
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	clientHandler := handler.NewClientHandler(clientLookupUsecase)
	timelineHandler := handler.NewTimelineHandler(timelineUsecase, customValidator)
	adminTurnoHandler := handler.NewAdminTurnoHandler(bookingUsecase, customValidator)
	blockedDateHandler := handler.NewBlockedDateHandler(blockedDateUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		availabilityHandler,
		bookingHandler,
		clientHandler,
		timelineHandler,
		adminTurnoHandler,
		blockedDateHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, reservations, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Rebuild redis slot holds for upcoming turnos before taking traffic
	warmUpCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Reservations.WarmUp(warmUpCtx); err != nil {
		logrus.Warnf("Failed to warm up slot holds: %+v", err)
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
