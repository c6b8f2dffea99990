package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inboxd/backend/internal/apperrors"
	"github.com/inboxd/backend/internal/core/domain"
	portssvc "github.com/inboxd/backend/internal/core/ports/services"
	"github.com/inboxd/backend/internal/platform/config"
)

// tokenClaims embeds the token payload alongside the registered JWT claims.
type tokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// tokenService implements TokenSvcFacade over HS256-signed JWTs.
// Secrets are read from the config at call time, not cached at construction,
// so a missing secret surfaces as an explicit error on first use.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// IssueAccessToken signs a short-lived access token for the given payload.
func (s *tokenService) IssueAccessToken(ctx context.Context, payload domain.TokenPayload) (string, time.Time, error) {
	return s.sign(payload, s.cfg.JWTAccessSecret, s.cfg.JWTAccessExpiryDuration, "JWT_ACCESS_SECRET")
}

// IssueRefreshToken signs a long-lived refresh token for the given payload.
func (s *tokenService) IssueRefreshToken(ctx context.Context, payload domain.TokenPayload) (string, time.Time, error) {
	return s.sign(payload, s.cfg.JWTRefreshSecret, s.cfg.JWTRefreshExpiryDuration, "JWT_REFRESH_SECRET")
}

// VerifyAccessToken checks signature and expiry of an access token.
func (s *tokenService) VerifyAccessToken(ctx context.Context, token string) (*domain.TokenPayload, error) {
	return s.verify(token, s.cfg.JWTAccessSecret, "JWT_ACCESS_SECRET")
}

// VerifyRefreshToken checks signature and expiry of a refresh token.
func (s *tokenService) VerifyRefreshToken(ctx context.Context, token string) (*domain.TokenPayload, error) {
	return s.verify(token, s.cfg.JWTRefreshSecret, "JWT_REFRESH_SECRET")
}

func (s *tokenService) sign(payload domain.TokenPayload, secret string, expiry time.Duration, secretName string) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("%s is not configured", secretName)
	}

	now := time.Now()
	expiresAt := now.Add(expiry)
	claims := tokenClaims{
		UserID: payload.UserID,
		Email:  payload.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWTIssuer,
			Subject:   payload.UserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *tokenService) verify(tokenString string, secret string, secretName string) (*domain.TokenPayload, error) {
	if secret == "" {
		return nil, fmt.Errorf("%s is not configured", secretName)
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrTokenExpired, err.Error())
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidToken, err.Error())
	}
	if !token.Valid || claims.UserID == "" {
		return nil, apperrors.ErrInvalidToken
	}

	return &domain.TokenPayload{UserID: claims.UserID, Email: claims.Email}, nil
}
