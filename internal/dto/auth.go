package dto

// RegisterRequest is the body for POST /auth/register.
// Password length mirrors the frontend's minimum.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned from register and login. The refresh token
// travels only in the cookie, never in the body.
type AuthResponse struct {
	Message     string       `json:"message"`
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// RefreshResponse is returned from POST /auth/refresh.
type RefreshResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}

// MessageResponse is the body for logout-family endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
