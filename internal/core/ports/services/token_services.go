package services

import (
	"context"
	"time"

	"github.com/inboxd/backend/internal/core/domain"
)

// TokenSvcFacade defines the interface for signing and verifying JWTs.
// Access and refresh tokens carry the same payload but are signed with
// distinct secrets and expiry policies.
type TokenSvcFacade interface {
	// IssueAccessToken signs a short-lived access token and returns it with
	// its expiry time. Errors if the access secret is not configured.
	IssueAccessToken(ctx context.Context, payload domain.TokenPayload) (string, time.Time, error)

	// IssueRefreshToken signs a long-lived refresh token and returns it with
	// its expiry time. Errors if the refresh secret is not configured.
	IssueRefreshToken(ctx context.Context, payload domain.TokenPayload) (string, time.Time, error)

	// VerifyAccessToken checks signature and expiry of an access token.
	// Returns apperrors.ErrTokenExpired past expiry, apperrors.ErrInvalidToken
	// for any other verification failure.
	VerifyAccessToken(ctx context.Context, token string) (*domain.TokenPayload, error)

	// VerifyRefreshToken checks signature and expiry of a refresh token.
	VerifyRefreshToken(ctx context.Context, token string) (*domain.TokenPayload, error)
}
