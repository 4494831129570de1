package adaptor

import (
	"net/http"

	"soccer-school/internal/dto/request"
	"soccer-school/internal/usecase"
	"soccer-school/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	service usecase.NotificationService
	log     *zap.Logger
}

func NewNotificationHandler(service usecase.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log,
	}
}

// ListMine handles GET /api/user/notifications
func (h *NotificationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 20),
	}

	notifications, err := h.service.GetUserNotifications(r.Context(), userID, page)
	if err != nil {
		handleServiceError(w, h.log, err, "list-notifications")
		return
	}

	utils.ResponseSuccess(w, "Notifications retrieved", notifications)
}

// MarkRead handles PATCH /api/user/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	notificationID := chi.URLParam(r, "id")

	if err := h.service.MarkRead(r.Context(), userID, notificationID); err != nil {
		handleServiceError(w, h.log, err, "mark-notification-read")
		return
	}

	utils.ResponseSuccess(w, "Notification marked read", nil)
}
