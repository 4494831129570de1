package wire

import (
	"soccer-school/internal/adaptor"
	"soccer-school/pkg/middleware"
	"soccer-school/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		r.Post("/api/reservations", reservationHandler.Create)
		r.Delete("/api/reservations/{id}", reservationHandler.Cancel)
		r.Get("/api/user/reservations", reservationHandler.ListMine)
	})
}
