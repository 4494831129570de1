package response

import (
	"time"

	"soccer-school/internal/data/entity"
)

type ReservationResponse struct {
	ID             string                `json:"id"`
	PracticeSlotID string                `json:"practice_slot_id"`
	Status         string                `json:"status"`
	Slot           *PracticeSlotResponse `json:"practice_slot,omitempty"`
	CancelledAt    *time.Time            `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

func ReservationToResponse(res *entity.Reservation, slot *entity.PracticeSlot) ReservationResponse {
	out := ReservationResponse{
		ID:             res.ID.String(),
		PracticeSlotID: res.PracticeSlotID.String(),
		Status:         string(res.Status),
		CancelledAt:    res.CancelledAt,
		CreatedAt:      res.CreatedAt,
	}
	if slot != nil {
		slotResp := SlotToResponse(slot)
		out.Slot = &slotResp
	}
	return out
}
