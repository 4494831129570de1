package entity

import (
	"time"
)

type SlotStatus string

const (
	SlotStatusOpen      SlotStatus = "open"
	SlotStatusFull      SlotStatus = "full"
	SlotStatusClosed    SlotStatus = "closed"
	SlotStatusCancelled SlotStatus = "cancelled"
)

// IsManual reports whether the status is staff-set and must never be
// overwritten by automatic reconciliation.
func (s SlotStatus) IsManual() bool {
	return s == SlotStatusClosed || s == SlotStatusCancelled
}

type PracticeSlot struct {
	Base
	Date            time.Time  `db:"practice_date"`
	StartTime       string     `db:"start_time"` // HH:MM
	EndTime         string     `db:"end_time"`   // HH:MM
	Capacity        int        `db:"capacity"`
	CurrentBookings int        `db:"current_bookings"`
	Status          SlotStatus `db:"status"`
	Notes           *string    `db:"notes"`
}

// ResolveStatus derives the effective status of a slot from its capacity and
// booking counter. Manual statuses (closed, cancelled) always win over the
// derived value. A non-positive capacity resolves to full.
func ResolveStatus(stored SlotStatus, capacity, currentBookings int) SlotStatus {
	if stored.IsManual() {
		return stored
	}
	if capacity <= 0 || currentBookings >= capacity {
		return SlotStatusFull
	}
	return SlotStatusOpen
}

// NeedsReconciliation reports whether the stored status is stale and should be
// written back. The write itself is guarded so manual statuses survive.
func NeedsReconciliation(stored, effective SlotStatus) bool {
	return stored != effective
}

func (s *PracticeSlot) EffectiveStatus() SlotStatus {
	return ResolveStatus(s.Status, s.Capacity, s.CurrentBookings)
}
