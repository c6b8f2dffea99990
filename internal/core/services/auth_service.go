package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inboxd/backend/internal/apperrors"
	"github.com/inboxd/backend/internal/core/domain"
	portsrepo "github.com/inboxd/backend/internal/core/ports/repositories"
	portssvc "github.com/inboxd/backend/internal/core/ports/services"
	"github.com/inboxd/backend/internal/platform/config"
	"github.com/inboxd/backend/internal/utils"
)

// authService implements AuthSvcFacade. It is the only place token pairs are
// minted or auth-relevant user state is mutated.
type authService struct {
	cfg          *config.Config
	userRepo     portsrepo.UserRepositoryFacade
	tokenRepo    portsrepo.RefreshTokenRepositoryFacade
	tokenService portssvc.TokenSvcFacade
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, tokenRepo portsrepo.RefreshTokenRepositoryFacade, tokenService portssvc.TokenSvcFacade) portssvc.AuthSvcFacade {
	return &authService{
		cfg:          cfg,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		tokenService: tokenService,
	}
}

// issueTokenPair mints an access/refresh pair and persists the refresh token.
// Issuance and persistence are one logical unit: if the row cannot be saved,
// the operation fails even though valid-looking tokens were computed.
func (s *authService) issueTokenPair(ctx context.Context, user *domain.User) (domain.TokenPair, error) {
	payload := domain.TokenPayload{UserID: user.UserID, Email: user.Email}

	accessToken, _, err := s.tokenService.IssueAccessToken(ctx, payload)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, refreshExpiry, err := s.tokenService.IssueRefreshToken(ctx, payload)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	now := time.Now()
	err = s.tokenRepo.SaveRefreshToken(ctx, domain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.UserID,
		ExpiresAt: refreshExpiry,
		IsRevoked: false,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Register creates a new account and issues its first token pair.
func (s *authService) Register(ctx context.Context, params portssvc.RegisterParams) (*domain.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}

	passwordHash, err := utils.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PasswordHash: passwordHash,
		IsGoogleAuth: false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.issueTokenPair(ctx, &user)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{User: &user, Tokens: tokens}, nil
}

// Login verifies credentials and issues a token pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.HasPassword() || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now

	tokens, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{User: user, Tokens: tokens}, nil
}

// GoogleLogin reconciles a verified Google profile with the user directory
// and issues a token pair. An existing password account with a matching
// email is linked in place; a missing account is created without a password.
func (s *authService) GoogleLogin(ctx context.Context, profile domain.GoogleUserInfo) (*domain.AuthResult, error) {
	if profile.Email == "" || profile.GivenName == "" {
		return nil, apperrors.ErrMissingProfileField
	}
	email := strings.ToLower(strings.TrimSpace(profile.Email))

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user != nil {
		if !user.IsGoogleAuth {
			// Auto-links a password account to its Google identity on email
			// match alone. Logged so deployments can audit the linking.
			slog.Warn("linking existing password account to google identity",
				slog.String("user_id", user.UserID))
			if err := s.userRepo.MarkGoogleLinked(ctx, user.UserID); err != nil {
				return nil, fmt.Errorf("failed to mark user google-linked: %w", err)
			}
			user.IsGoogleAuth = true
		}
	} else {
		now := time.Now()
		created := domain.User{
			UserID:       uuid.NewString(),
			Email:        email,
			FirstName:    profile.GivenName,
			LastName:     profile.FamilyName,
			IsGoogleAuth: true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.userRepo.SaveUser(ctx, created); err != nil {
			return nil, fmt.Errorf("failed to create google user: %w", err)
		}
		user = &created
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now

	tokens, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{User: user, Tokens: tokens}, nil
}

// RefreshTokenPair rotates a refresh token. The presented token is claimed
// with a single conditional update, so concurrent rotations of the same token
// cannot both succeed.
func (s *authService) RefreshTokenPair(ctx context.Context, presentedToken string) (*domain.TokenPair, error) {
	payload, err := s.tokenService.VerifyRefreshToken(ctx, presentedToken)
	if err != nil {
		return nil, err
	}

	claimed, err := s.tokenRepo.RevokeRefreshTokenIfValid(ctx, presentedToken)
	if err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if !claimed {
		// A valid JWT with no live row: already rotated, revoked, or never
		// persisted. Treated as replay.
		return nil, apperrors.ErrRefreshTokenInvalid
	}

	user := &domain.User{UserID: payload.UserID, Email: payload.Email}
	tokens, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Logout revokes the presented refresh token. Best-effort and idempotent:
// an unknown or already-revoked token is not an error.
func (s *authService) Logout(ctx context.Context, presentedToken string) error {
	if presentedToken == "" {
		return nil
	}
	return s.tokenRepo.RevokeRefreshToken(ctx, presentedToken)
}

// LogoutAll revokes every active refresh token owned by the user.
func (s *authService) LogoutAll(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.ErrUnauthenticated
	}
	return s.tokenRepo.RevokeAllForUser(ctx, userID)
}

// CleanupRefreshTokens deletes rows that are revoked and untouched for the
// given number of days, or past expiry.
func (s *authService) CleanupRefreshTokens(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	return s.tokenRepo.DeleteStaleRefreshTokens(ctx, cutoff)
}
