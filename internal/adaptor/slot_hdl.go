package adaptor

import (
	"encoding/json"
	"net/http"

	"soccer-school/internal/dto/request"
	"soccer-school/internal/usecase"
	"soccer-school/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SlotHandler struct {
	service usecase.SlotService
	log     *zap.Logger
}

func NewSlotHandler(service usecase.SlotService, log *zap.Logger) *SlotHandler {
	return &SlotHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/practice-slots
func (h *SlotHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := &request.SlotFilterRequest{
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
		Status:   r.URL.Query().Get("status"),
	}

	slots, err := h.service.ListSlots(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "list-slots")
		return
	}

	utils.ResponseSuccess(w, "Practice slots retrieved", slots)
}

// Get handles GET /api/practice-slots/{id}
func (h *SlotHandler) Get(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")

	slot, err := h.service.GetSlot(r.Context(), slotID)
	if err != nil {
		handleServiceError(w, h.log, err, "get-slot")
		return
	}

	utils.ResponseSuccess(w, "Practice slot retrieved", slot)
}

// Create handles POST /api/admin/practice-slots
func (h *SlotHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSlotRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	slot, err := h.service.CreateSlot(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create-slot")
		return
	}

	utils.ResponseCreated(w, "Practice slot created", slot)
}

// Update handles PUT /api/admin/practice-slots/{id}
func (h *SlotHandler) Update(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")

	var req request.UpdateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	slot, err := h.service.UpdateSlot(r.Context(), slotID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update-slot")
		return
	}

	utils.ResponseSuccess(w, "Practice slot updated", slot)
}

// Delete handles DELETE /api/admin/practice-slots/{id}
func (h *SlotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")

	if err := h.service.DeleteSlot(r.Context(), slotID); err != nil {
		handleServiceError(w, h.log, err, "delete-slot")
		return
	}

	utils.ResponseSuccess(w, "Practice slot deleted", nil)
}

// MarkDateFull handles POST /api/admin/practice-slots/mark-full
func (h *SlotHandler) MarkDateFull(w http.ResponseWriter, r *http.Request) {
	var req request.MarkDateFullRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	affected, err := h.service.MarkDateFull(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "mark-date-full")
		return
	}

	utils.ResponseSuccess(w, "Slots marked full", map[string]int64{"updated": affected})
}
