package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a user with an existing email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateToken is returned when trying to store a refresh token that already exists
	ErrDuplicateToken = errors.New("refresh token already exists")

	// ErrEmptyCart is returned when placing an order from a cart with no items
	ErrEmptyCart = errors.New("cart is empty")
)
