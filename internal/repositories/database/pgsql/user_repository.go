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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new instance of PgxUserRepository
func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const (
	usersTable = "users"

	selectUserFields = `
		user_id, email, first_name, last_name, password_hash,
		is_google_auth, last_login_at, created_at, updated_at
	`

	insertUserQuery = `
		INSERT INTO ` + usersTable + ` (
			user_id, email, first_name, last_name, password_hash,
			is_google_auth, created_at, updated_at
		) VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8)
	`

	findUserByIDQuery = `
		SELECT ` + selectUserFields + `
		FROM ` + usersTable + `
		WHERE user_id = $1
	`

	findUserByEmailQuery = `
		SELECT ` + selectUserFields + `
		FROM ` + usersTable + `
		WHERE email = lower($1)
	`

	updateLastLoginQuery = `
		UPDATE ` + usersTable + `
		SET last_login_at = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	markGoogleLinkedQuery = `
		UPDATE ` + usersTable + `
		SET is_google_auth = TRUE, updated_at = NOW()
		WHERE user_id = $1
	`
)

func (r *PgxUserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.FirstName,
		&m.LastName,
		&m.PasswordHash,
		&m.IsGoogleAuth,
		&m.LastLoginAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

// SaveUser persists a new user. The unique index on email surfaces as
// apperrors.ErrDuplicateEmail.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	_, err := r.Pool.Exec(ctx, insertUserQuery,
		m.UserID,
		m.Email,
		m.FirstName,
		m.LastName,
		m.PasswordHash,
		m.IsGoogleAuth,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := r.scanUser(r.Pool.QueryRow(ctx, findUserByIDQuery, userID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.scanUser(r.Pool.QueryRow(ctx, findUserByEmailQuery, email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) UpdateLastLogin(ctx context.Context, userID string, loginAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, updateLastLoginQuery, userID, loginAt)
	if err != nil {
		return fmt.Errorf("failed to update last login for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) MarkGoogleLinked(ctx context.Context, userID string) error {
	tag, err := r.Pool.Exec(ctx, markGoogleLinkedQuery, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user %s google-linked: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
