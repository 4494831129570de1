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

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/reservations
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create-reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation created", reservation)
}

// Cancel handles DELETE /api/reservations/{id}
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID := chi.URLParam(r, "id")

	reservation, err := h.service.CancelReservation(r.Context(), userID, reservationID)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel-reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation cancelled", reservation)
}

// ListMine handles GET /api/user/reservations
func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservations, err := h.service.GetUserReservations(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list-reservations")
		return
	}

	utils.ResponseSuccess(w, "Reservations retrieved", reservations)
}
