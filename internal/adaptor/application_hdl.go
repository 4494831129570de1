package adaptor

import (
	"encoding/json"
	"net/http"

	"soccer-school/internal/data/entity"
	"soccer-school/internal/dto/request"
	"soccer-school/internal/usecase"
	"soccer-school/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ApplicationHandler struct {
	service usecase.ApplicationService
	log     *zap.Logger
}

func NewApplicationHandler(service usecase.ApplicationService, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/applications
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	app, err := h.service.CreateApplication(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create-application")
		return
	}

	utils.ResponseCreated(w, "Application submitted", app)
}

// ListMine handles GET /api/user/applications
func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	apps, err := h.service.GetUserApplications(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list-user-applications")
		return
	}

	utils.ResponseSuccess(w, "Applications retrieved", apps)
}

// Get handles GET /api/applications/{id}
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	applicationID := chi.URLParam(r, "id")

	app, err := h.service.GetApplication(r.Context(), userID, role == string(entity.RoleAdmin), applicationID)
	if err != nil {
		handleServiceError(w, h.log, err, "get-application")
		return
	}

	utils.ResponseSuccess(w, "Application retrieved", app)
}

// ListAll handles GET /api/admin/applications
func (h *ApplicationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.ListApplications(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list-applications")
		return
	}

	utils.ResponseSuccess(w, "Applications retrieved", apps)
}

// Approve handles PATCH /api/admin/applications/{id}/approve
func (h *ApplicationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "id")

	app, err := h.service.ApproveApplication(r.Context(), applicationID)
	if err != nil {
		handleServiceError(w, h.log, err, "approve-application")
		return
	}

	utils.ResponseSuccess(w, "Application approved", app)
}

// Reject handles PATCH /api/admin/applications/{id}/reject
func (h *ApplicationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "id")

	var req request.RejectApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	app, err := h.service.RejectApplication(r.Context(), applicationID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "reject-application")
		return
	}

	utils.ResponseSuccess(w, "Application rejected", app)
}

// Memo handles PATCH /api/admin/applications/{id}/memo
func (h *ApplicationHandler) Memo(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "id")

	var req request.AdminMemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	app, err := h.service.UpdateAdminMemo(r.Context(), applicationID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update-application-memo")
		return
	}

	utils.ResponseSuccess(w, "Memo updated", app)
}
