package domain

import "time"

// User represents an account holder. PasswordHash is empty for accounts
// created through a federated login that never set a password.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ExternalIdentity is what an OAuth provider asserts about a user after a
// successful federated login.
type ExternalIdentity struct {
	Provider       string
	ProviderUserID string
	Email          string
	FullName       string
}
