package services

import (
	"context"

	"github.com/inboxd/backend/internal/core/domain"
)

// UserSvcFacade defines read access to the user directory for handlers and
// the access guard. All auth-relevant mutation goes through AuthSvcFacade.
type UserSvcFacade interface {
	// GetUserByID retrieves a user, returning apperrors.ErrNotFound when the
	// account does not exist.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by (case-insensitive) email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
