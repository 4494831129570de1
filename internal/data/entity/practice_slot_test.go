package entity

import "testing"

func TestResolveStatusDerived(t *testing.T) {
	tests := []struct {
		name     string
		stored   SlotStatus
		capacity int
		bookings int
		want     SlotStatus
	}{
		{"empty slot is open", SlotStatusOpen, 10, 0, SlotStatusOpen},
		{"below capacity is open", SlotStatusFull, 10, 9, SlotStatusOpen},
		{"at capacity is full", SlotStatusOpen, 10, 10, SlotStatusFull},
		{"over capacity is full", SlotStatusOpen, 10, 11, SlotStatusFull},
		{"stale full heals to open", SlotStatusFull, 2, 1, SlotStatusOpen},
		{"stale open heals to full", SlotStatusOpen, 2, 2, SlotStatusFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStatus(tt.stored, tt.capacity, tt.bookings)
			if got != tt.want {
				t.Errorf("ResolveStatus(%s, %d, %d) = %s, want %s",
					tt.stored, tt.capacity, tt.bookings, got, tt.want)
			}
		})
	}
}

func TestResolveStatusManualOverride(t *testing.T) {
	for _, stored := range []SlotStatus{SlotStatusClosed, SlotStatusCancelled} {
		// Counter values must never matter for manual statuses.
		for _, bookings := range []int{0, 5, 10} {
			if got := ResolveStatus(stored, 5, bookings); got != stored {
				t.Errorf("ResolveStatus(%s, 5, %d) = %s, want %s", stored, bookings, got, stored)
			}
		}
	}
}

func TestResolveStatusNonPositiveCapacity(t *testing.T) {
	if got := ResolveStatus(SlotStatusOpen, 0, 0); got != SlotStatusFull {
		t.Errorf("capacity 0 should resolve full, got %s", got)
	}
	if got := ResolveStatus(SlotStatusOpen, -1, 0); got != SlotStatusFull {
		t.Errorf("negative capacity should resolve full, got %s", got)
	}
}

func TestNeedsReconciliation(t *testing.T) {
	if NeedsReconciliation(SlotStatusOpen, SlotStatusOpen) {
		t.Error("identical statuses should not need reconciliation")
	}
	if !NeedsReconciliation(SlotStatusFull, SlotStatusOpen) {
		t.Error("differing statuses should need reconciliation")
	}
}

func TestEffectiveStatus(t *testing.T) {
	slot := &PracticeSlot{Capacity: 2, CurrentBookings: 2, Status: SlotStatusOpen}
	if got := slot.EffectiveStatus(); got != SlotStatusFull {
		t.Errorf("EffectiveStatus() = %s, want full", got)
	}
	slot.Status = SlotStatusClosed
	if got := slot.EffectiveStatus(); got != SlotStatusClosed {
		t.Errorf("EffectiveStatus() = %s, want closed", got)
	}
}
