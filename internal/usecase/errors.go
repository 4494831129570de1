// Package usecase holds the business rules. Handlers map the sentinel
// errors below onto HTTP status codes with errors.Is.
package usecase

import "errors"

var (
	// Auth
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidIDToken     = errors.New("invalid id token")
	ErrSessionNotFound    = errors.New("session not found or expired")

	// Practice slots
	ErrSlotNotFound    = errors.New("practice slot not found")
	ErrSlotUnavailable = errors.New("practice slot is not open for reservations")
	ErrSlotFull        = errors.New("practice slot is full")

	// Reservations
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrDuplicateReservation = errors.New("active reservation for this slot already exists")
	ErrReservationLimit     = errors.New("active reservation limit reached")

	// Applications
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyProcessed    = errors.New("application has already been processed")
	ErrMissingReason       = errors.New("rejection reason is required")

	ErrNotificationNotFound = errors.New("notification not found")
)

// ValidationError carries field-level messages from request validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// AsValidationError unwraps a *ValidationError if err carries one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
