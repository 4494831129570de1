package wire

import (
	"soccer-school/internal/adaptor"
	"soccer-school/pkg/middleware"
	"soccer-school/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNotification(
	r chi.Router,
	notificationHandler *adaptor.NotificationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		r.Get("/api/user/notifications", notificationHandler.ListMine)
		r.Patch("/api/user/notifications/{id}/read", notificationHandler.MarkRead)
	})
}
