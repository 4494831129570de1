package wire

import (
	"time"

	"soccer-school/internal/adaptor"
	"soccer-school/pkg/middleware"
	"soccer-school/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireSlot(
	r chi.Router,
	slotHandler *adaptor.SlotHandler,
	config *utils.Config,
	rdb *redis.Client,
	cacheTTL time.Duration,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// The slot calendar is the busiest read path, so it goes through
	// the response cache
	r.Group(func(r chi.Router) {
		r.Use(middleware.Cache(rdb, cacheTTL, log))

		r.Get("/api/practice-slots", slotHandler.List)
		r.Get("/api/practice-slots/{id}", slotHandler.Get)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/practice-slots", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Post("/", slotHandler.Create)
		r.Post("/mark-full", slotHandler.MarkDateFull)
		r.Put("/{id}", slotHandler.Update)
		r.Delete("/{id}", slotHandler.Delete)
	})
}
