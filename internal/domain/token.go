package domain

import "time"

// RefreshToken is the server-side record of an outstanding refresh token.
// The token column holds the literal signed string; a user may hold several
// rows at once (one per device). Expired rows are not swept, they are
// rejected at verification time.
type RefreshToken struct {
	Token     string    `json:"-" db:"token"`
	UserID    string    `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// Expired reports whether the stored row has outlived the token lifetime.
func (t RefreshToken) Expired() bool {
	return time.Now().After(t.ExpiresAt)
}
