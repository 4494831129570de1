package adaptor

import (
	"errors"
	"net/http"

	"soccer-school/internal/usecase"
	"soccer-school/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps usecase errors onto HTTP responses. Anything
// unrecognized is a 500 and gets logged with full detail.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, op string) {
	if ve, ok := usecase.AsValidationError(err); ok {
		utils.ResponseBadRequest(w, "Validation failed", ve.Fields)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidIDToken),
		errors.Is(err, usecase.ErrSessionNotFound):
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrSlotNotFound),
		errors.Is(err, usecase.ErrReservationNotFound),
		errors.Is(err, usecase.ErrApplicationNotFound),
		errors.Is(err, usecase.ErrNotificationNotFound):
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrMissingReason):
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrSlotUnavailable),
		errors.Is(err, usecase.ErrSlotFull),
		errors.Is(err, usecase.ErrReservationLimit),
		errors.Is(err, usecase.ErrDuplicateReservation),
		errors.Is(err, usecase.ErrAlreadyProcessed):
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Unhandled service error", zap.String("op", op), zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
