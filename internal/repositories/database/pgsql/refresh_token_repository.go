package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inboxd/backend/internal/apperrors"
	"github.com/inboxd/backend/internal/core/domain"
	portsrepo "github.com/inboxd/backend/internal/core/ports/repositories"
	"github.com/inboxd/backend/internal/models"
	"github.com/inboxd/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRefreshTokenRepository struct {
	BaseRepository
}

// newPgxRefreshTokenRepository creates a new instance of PgxRefreshTokenRepository
func newPgxRefreshTokenRepository(db *pgxpool.Pool) portsrepo.RefreshTokenRepositoryFacade {
	return &PgxRefreshTokenRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure PgxRefreshTokenRepository implements the facade
var _ portsrepo.RefreshTokenRepositoryFacade = (*PgxRefreshTokenRepository)(nil)

const (
	refreshTokensTable = "refresh_tokens"

	selectRefreshTokenFields = `
		token, user_id, expires_at, is_revoked, created_at, updated_at
	`

	insertRefreshTokenQuery = `
		INSERT INTO ` + refreshTokensTable + ` (
			token, user_id, expires_at, is_revoked, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	findValidRefreshTokenQuery = `
		SELECT ` + selectRefreshTokenFields + `
		FROM ` + refreshTokensTable + `
		WHERE token = $1 AND is_revoked = FALSE AND expires_at > NOW()
	`

	revokeRefreshTokenQuery = `
		UPDATE ` + refreshTokensTable + `
		SET is_revoked = TRUE, updated_at = NOW()
		WHERE token = $1 AND is_revoked = FALSE
	`

	// The validity predicate inside the UPDATE makes rotation race-safe:
	// of N concurrent calls for one token, exactly one claims the row.
	revokeRefreshTokenIfValidQuery = `
		UPDATE ` + refreshTokensTable + `
		SET is_revoked = TRUE, updated_at = NOW()
		WHERE token = $1 AND is_revoked = FALSE AND expires_at > NOW()
	`

	revokeAllForUserQuery = `
		UPDATE ` + refreshTokensTable + `
		SET is_revoked = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND is_revoked = FALSE
	`

	deleteStaleRefreshTokensQuery = `
		DELETE FROM ` + refreshTokensTable + `
		WHERE (is_revoked = TRUE AND updated_at < $1) OR expires_at < NOW()
	`
)

// SaveRefreshToken persists a newly issued refresh token.
func (r *PgxRefreshTokenRepository) SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error {
	m := mapping.ToModelRefreshToken(token)
	_, err := r.Pool.Exec(ctx, insertRefreshTokenQuery,
		m.Token,
		m.UserID,
		m.ExpiresAt,
		m.IsRevoked,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// FindValidRefreshToken returns the row iff it satisfies the validity invariant.
func (r *PgxRefreshTokenRepository) FindValidRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var m models.RefreshToken
	err := r.Pool.QueryRow(ctx, findValidRefreshTokenQuery, token).Scan(
		&m.Token,
		&m.UserID,
		&m.ExpiresAt,
		&m.IsRevoked,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	d := mapping.ToDomainRefreshToken(m)
	return &d, nil
}

// RevokeRefreshToken flips the revoked flag. Zero matched rows is not an error.
func (r *PgxRefreshTokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	_, err := r.Pool.Exec(ctx, revokeRefreshTokenQuery, token)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RevokeRefreshTokenIfValid atomically claims a still-valid token.
func (r *PgxRefreshTokenRepository) RevokeRefreshTokenIfValid(ctx context.Context, token string) (bool, error) {
	tag, err := r.Pool.Exec(ctx, revokeRefreshTokenIfValidQuery, token)
	if err != nil {
		return false, fmt.Errorf("failed to claim refresh token: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RevokeAllForUser revokes every non-revoked token owned by the user.
func (r *PgxRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.Pool.Exec(ctx, revokeAllForUserQuery, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh tokens for user %s: %w", userID, err)
	}
	return nil
}

// DeleteStaleRefreshTokens removes revoked-and-stale or expired rows.
func (r *PgxRefreshTokenRepository) DeleteStaleRefreshTokens(ctx context.Context, revokedBefore time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, deleteStaleRefreshTokensQuery, revokedBefore)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale refresh tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
