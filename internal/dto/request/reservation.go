package request

type CreateReservationRequest struct {
	PracticeSlotID string `json:"practice_slot_id" validate:"required,uuid4"`
}
