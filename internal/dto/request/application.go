package request

type CreateApplicationRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	NameKana   string  `json:"name_kana" validate:"required,max=100"`
	Grade      string  `json:"grade" validate:"required,max=20"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone" validate:"required,min=10,max=15"`
	ParentName *string `json:"parent_name,omitempty" validate:"omitempty,max=100"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type RejectApplicationRequest struct {
	Reason string `json:"reason"`
}

type AdminMemoRequest struct {
	Memo string `json:"memo" validate:"max=1000"`
}
