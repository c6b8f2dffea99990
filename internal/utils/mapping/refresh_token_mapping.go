package mapping

import (
	"github.com/inboxd/backend/internal/core/domain"
	"github.com/inboxd/backend/internal/models"
)

// ToModelRefreshToken converts a domain refresh token to its row shape.
func ToModelRefreshToken(d domain.RefreshToken) models.RefreshToken {
	return models.RefreshToken{
		Token:     d.Token,
		UserID:    d.UserID,
		ExpiresAt: d.ExpiresAt,
		IsRevoked: d.IsRevoked,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainRefreshToken converts a row to a domain refresh token.
func ToDomainRefreshToken(m models.RefreshToken) domain.RefreshToken {
	return domain.RefreshToken{
		Token:     m.Token,
		UserID:    m.UserID,
		ExpiresAt: m.ExpiresAt,
		IsRevoked: m.IsRevoked,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
