package services

import (
	"context"

	"github.com/inboxd/backend/internal/core/domain"
)

// RegisterParams carries the validated registration input into the service.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthSvcFacade is the only component allowed to mint token pairs or mutate
// authentication-relevant user state.
type AuthSvcFacade interface {
	// Register creates a new account and issues its first token pair.
	// Returns apperrors.ErrDuplicateEmail if the (case-normalized) email is taken.
	Register(ctx context.Context, params RegisterParams) (*domain.AuthResult, error)

	// Login verifies credentials, stamps last login, and issues a token pair.
	// Both an unknown email and a wrong password yield
	// apperrors.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)

	// GoogleLogin reconciles a verified Google profile with the user
	// directory (linking or creating an account), then proceeds as Login.
	// Returns apperrors.ErrMissingProfileField if the profile lacks an email
	// or given name.
	GoogleLogin(ctx context.Context, profile domain.GoogleUserInfo) (*domain.AuthResult, error)

	// RefreshTokenPair rotates a refresh token: the presented token is
	// atomically revoked and a brand-new pair is issued. A token can win this
	// at most once; replays get apperrors.ErrRefreshTokenInvalid.
	RefreshTokenPair(ctx context.Context, presentedToken string) (*domain.TokenPair, error)

	// Logout revokes the presented refresh token if it exists. Idempotent.
	Logout(ctx context.Context, presentedToken string) error

	// LogoutAll revokes every active refresh token owned by the user.
	LogoutAll(ctx context.Context, userID string) error

	// CleanupRefreshTokens deletes revoked-and-stale or expired rows.
	// Maintenance only, never on the request hot path.
	CleanupRefreshTokens(ctx context.Context, olderThanDays int) (int64, error)
}
