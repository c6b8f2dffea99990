package repositories

import (
	"context"
	"time"

	"github.com/inboxd/backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email. The lookup is
	// case-insensitive; emails are stored lowercase.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateLastLogin stamps the user's last successful login.
	UpdateLastLogin(ctx context.Context, userID string, loginAt time.Time) error

	// MarkGoogleLinked flips the google-auth flag on an existing account.
	MarkGoogleLinked(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
