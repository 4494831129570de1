package request

type CreateSlotRequest struct {
	Date      string  `json:"date" validate:"required"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
	Capacity  int     `json:"capacity" validate:"required,min=1"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateSlotRequest struct {
	Date      string  `json:"date" validate:"required"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
	Capacity  int     `json:"capacity" validate:"required,min=1"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=open full closed cancelled"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type MarkDateFullRequest struct {
	Date string `json:"date" validate:"required"`
}

type SlotFilterRequest struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Status   string `json:"status"`
}
