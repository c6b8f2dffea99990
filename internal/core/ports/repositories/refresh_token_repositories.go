package repositories

import (
	"context"
	"time"

	"github.com/inboxd/backend/internal/core/domain"
)

// RefreshTokenReader defines read operations for refresh token rows.
type RefreshTokenReader interface {
	// FindValidRefreshToken returns the row for the given token string iff it
	// satisfies the validity invariant (not revoked, not expired). Returns
	// apperrors.ErrNotFound otherwise.
	FindValidRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error)
}

// RefreshTokenWriter defines write operations for refresh token rows.
type RefreshTokenWriter interface {
	// SaveRefreshToken persists a newly issued refresh token.
	SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error

	// RevokeRefreshToken flips the revoked flag. Idempotent: revoking an
	// unknown or already-revoked token is not an error.
	RevokeRefreshToken(ctx context.Context, token string) error

	// RevokeRefreshTokenIfValid atomically revokes the token iff it still
	// satisfies the validity invariant, reporting whether this call claimed
	// it. Concurrent rotations of the same token see exactly one true.
	RevokeRefreshTokenIfValid(ctx context.Context, token string) (bool, error)

	// RevokeAllForUser revokes every non-revoked token owned by the user.
	RevokeAllForUser(ctx context.Context, userID string) error
}

// RefreshTokenMaintainer defines the off-hot-path maintenance operations.
type RefreshTokenMaintainer interface {
	// DeleteStaleRefreshTokens removes rows that are revoked and untouched
	// since the cutoff, or past their expiry. Returns the number deleted.
	DeleteStaleRefreshTokens(ctx context.Context, revokedBefore time.Time) (int64, error)
}

// RefreshTokenRepositoryFacade combines all refresh-token repository interfaces.
type RefreshTokenRepositoryFacade interface {
	RefreshTokenReader
	RefreshTokenWriter
	RefreshTokenMaintainer
}
