package domain

import "time"

// User represents an account in the domain. PasswordHash is empty for
// accounts established via Google only.
type User struct {
	UserID       string     `json:"userID"` // Primary Key (UUID)
	Email        string     `json:"email"`  // Stored lowercase, globally unique
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	PasswordHash string     `json:"-"` // Never expose the hash in JSON responses
	IsGoogleAuth bool       `json:"isGoogleAuth"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// HasPassword reports whether this account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
