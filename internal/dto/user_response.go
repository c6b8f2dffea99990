package dto

import (
	"time"

	"github.com/inboxd/backend/internal/core/domain"
)

// UserResponse is the client-facing user shape. It never carries the
// password hash.
type UserResponse struct {
	UserID       string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	IsGoogleAuth bool       `json:"isGoogleAuth"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:       user.UserID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsGoogleAuth: user.IsGoogleAuth,
		LastLoginAt:  user.LastLoginAt,
		CreatedAt:    user.CreatedAt,
	}
}

// ProfileResponse wraps the profile endpoint payload.
type ProfileResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
