package wire

import (
	"net/http"
	"time"

	"soccer-school/internal/adaptor"
	"soccer-school/internal/usecase"
	"soccer-school/pkg/middleware"
	"soccer-school/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring connects services, handlers and routes
func Wiring(service *usecase.Service, config *utils.Config, rdb *redis.Client, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, rdb, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	rdb *redis.Client,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	cacheTTL := time.Duration(config.Redis.CacheTTLSeconds) * time.Second

	// Apply routes
	wireAuth(r, handler.Auth, config, logger)
	wireSlot(r, handler.Slot, config, rdb, cacheTTL, logger)
	wireReservation(r, handler.Reservation, config, logger)
	wireApplication(r, handler.Application, config, logger)
	wireNotification(r, handler.Notification, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
