package response

import (
	"soccer-school/internal/data/entity"
)

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        *string `json:"email,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	Role         string  `json:"role"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:           user.ID.String(),
		Name:         user.Name,
		Email:        user.Email,
		ProfileImage: user.ProfileImage,
		Role:         string(user.Role),
	}
}
