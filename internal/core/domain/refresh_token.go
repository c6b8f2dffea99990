package domain

import "time"

// RefreshToken is a persisted long-lived credential. The signed JWT string
// itself is the lookup key; the row is revoked (not deleted) on logout or
// rotation so the audit trail survives until the cleanup sweep.
type RefreshToken struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsValid checks the validity invariant: not revoked and not past expiry.
func (t *RefreshToken) IsValid() bool {
	return !t.IsRevoked && t.ExpiresAt.After(time.Now())
}
