package response

import (
	"strings"
	"time"

	"soccer-school/internal/data/entity"
)

type PracticeSlotResponse struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	Capacity        int       `json:"capacity"`
	CurrentBookings int       `json:"current_bookings"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// SlotToResponse renders a slot with its effective status. Statuses are
// stored lowercase and exposed uppercase.
func SlotToResponse(slot *entity.PracticeSlot) PracticeSlotResponse {
	return PracticeSlotResponse{
		ID:              slot.ID.String(),
		Date:            slot.Date.Format("2006-01-02"),
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		Capacity:        slot.Capacity,
		CurrentBookings: slot.CurrentBookings,
		Status:          strings.ToUpper(string(slot.EffectiveStatus())),
		Notes:           slot.Notes,
		CreatedAt:       slot.CreatedAt,
	}
}
