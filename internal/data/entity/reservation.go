package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation is a member's claim on one seat in a practice slot. Rows are
// never deleted; cancellation flips the status and keeps the row for history.
type Reservation struct {
	BaseSimple
	UserID         uuid.UUID         `db:"user_id"`
	PracticeSlotID uuid.UUID         `db:"practice_slot_id"`
	Status         ReservationStatus `db:"status"`
	CancelledAt    *time.Time        `db:"cancelled_at"`
}
