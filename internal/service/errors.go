package service

import "errors"

// Service-level errors the handlers map onto the HTTP taxonomy:
// unauthenticated (401), forbidden (403), not found (404), conflict (409).
// Anything else is a persistence failure reported as 500 with a generic
// message.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("not found")
	ErrWeakPassword       = errors.New("password must be at least 8 characters long and contain uppercase, lowercase, and number")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrRefreshForbidden   = errors.New("refresh token invalid, expired, or revoked")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidStatus      = errors.New("invalid order status")
)
