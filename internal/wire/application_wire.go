package wire

import (
	"soccer-school/internal/adaptor"
	"soccer-school/pkg/middleware"
	"soccer-school/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireApplication(
	r chi.Router,
	applicationHandler *adaptor.ApplicationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		r.Post("/api/applications", applicationHandler.Create)
		r.Get("/api/applications/{id}", applicationHandler.Get)
		r.Get("/api/user/applications", applicationHandler.ListMine)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/applications", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Get("/", applicationHandler.ListAll)
		r.Patch("/{id}/approve", applicationHandler.Approve)
		r.Patch("/{id}/reject", applicationHandler.Reject)
		r.Patch("/{id}/memo", applicationHandler.Memo)
	})
}
