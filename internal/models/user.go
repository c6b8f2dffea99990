package models

import (
	"database/sql"
	"time"
)

// User is the database row shape for the users table.
type User struct {
	UserID       string         `db:"user_id"`
	Email        string         `db:"email"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	PasswordHash sql.NullString `db:"password_hash"` // NULL for Google-only accounts
	IsGoogleAuth bool           `db:"is_google_auth"`
	LastLoginAt  sql.NullTime   `db:"last_login_at"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
