package response

import (
	"time"

	"soccer-school/internal/data/entity"
)

type ApplicationResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	NameKana       string    `json:"name_kana"`
	Grade          string    `json:"grade"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	ParentName     *string   `json:"parent_name,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	Status         string    `json:"status"`
	RejectedReason *string   `json:"rejected_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AdminApplicationResponse additionally exposes the staff-only memo.
type AdminApplicationResponse struct {
	ApplicationResponse
	AdminMemo *string `json:"admin_memo,omitempty"`
	UserID    string  `json:"user_id"`
}

func ApplicationToResponse(app *entity.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:             app.ID.String(),
		Name:           app.Name,
		NameKana:       app.NameKana,
		Grade:          app.Grade,
		Email:          app.Email,
		Phone:          app.Phone,
		ParentName:     app.ParentName,
		Notes:          app.Notes,
		Status:         string(app.Status),
		RejectedReason: app.RejectedReason,
		CreatedAt:      app.CreatedAt,
		UpdatedAt:      app.UpdatedAt,
	}
}

func ApplicationToAdminResponse(app *entity.Application) AdminApplicationResponse {
	return AdminApplicationResponse{
		ApplicationResponse: ApplicationToResponse(app),
		AdminMemo:           app.AdminMemo,
		UserID:              app.UserID.String(),
	}
}

func ApplicationsToResponse(apps []entity.Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, ApplicationToResponse(&apps[i]))
	}
	return responses
}

func ApplicationsToAdminResponse(apps []entity.Application) []AdminApplicationResponse {
	responses := make([]AdminApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, ApplicationToAdminResponse(&apps[i]))
	}
	return responses
}
