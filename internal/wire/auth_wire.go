package wire

import (
	"soccer-school/internal/adaptor"
	"soccer-school/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// All auth routes are public; refresh and logout authenticate
	// through the refresh token in the body
	r.Post("/api/auth/line", authHandler.LineLogin)
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/refresh", authHandler.Refresh)
	r.Post("/api/logout", authHandler.Logout)
}
