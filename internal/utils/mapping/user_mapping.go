package mapping

import (
	"database/sql"

	"github.com/inboxd/backend/internal/core/domain"
	"github.com/inboxd/backend/internal/models"
)

// ToModelUser converts a domain user to its database row representation.
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		Email:        d.Email,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		IsGoogleAuth: d.IsGoogleAuth,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.PasswordHash != "" {
		m.PasswordHash = sql.NullString{String: d.PasswordHash, Valid: true}
	}
	if d.LastLoginAt != nil {
		m.LastLoginAt = sql.NullTime{Time: *d.LastLoginAt, Valid: true}
	}
	return m
}

// ToDomainUser converts a database row to a domain user.
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		IsGoogleAuth: m.IsGoogleAuth,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.PasswordHash.Valid {
		d.PasswordHash = m.PasswordHash.String
	}
	if m.LastLoginAt.Valid {
		t := m.LastLoginAt.Time
		d.LastLoginAt = &t
	}
	return d
}
