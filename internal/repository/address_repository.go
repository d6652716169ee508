package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopward/commerce-api/internal/domain"
	"github.com/shopward/commerce-api/pkg/database"
)

// addressRepository implements AddressRepository interface
type addressRepository struct {
	db *database.Postgres
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *database.Postgres) AddressRepository {
	return &addressRepository{db: db}
}

const addressColumns = `id, user_id, address_line1, address_line2, city, state, postal_code, country`

func scanAddress(scan func(dest ...any) error) (*domain.Address, error) {
	address := &domain.Address{}
	var line2 sql.NullString

	err := scan(
		&address.ID,
		&address.UserID,
		&address.AddressLine1,
		&line2,
		&address.City,
		&address.State,
		&address.PostalCode,
		&address.Country,
	)
	if err != nil {
		return nil, err
	}

	if line2.Valid {
		address.AddressLine2 = &line2.String
	}

	return address, nil
}

// ListByUser retrieves all addresses owned by a user
func (r *addressRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM user_addresses WHERE user_id = $1`

	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []*domain.Address
	for rows.Next() {
		address, err := scanAddress(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, address)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate addresses: %w", err)
	}

	return addresses, nil
}

// GetByID retrieves an address owned by the given user.
func (r *addressRepository) GetByID(ctx context.Context, addressID, userID string) (*domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM user_addresses WHERE id = $1 AND user_id = $2`

	address, err := scanAddress(r.db.DB.QueryRowContext(ctx, query, addressID, userID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("address with id %s not found: %w", addressID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get address by id: %w", err)
	}

	return address, nil
}

// Create creates a new address
func (r *addressRepository) Create(ctx context.Context, address *domain.Address) error {
	query := `
		INSERT INTO user_addresses (id, user_id, address_line1, address_line2, city, state, postal_code, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if address.ID == "" {
		address.ID = uuid.New().String()
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		address.ID,
		address.UserID,
		address.AddressLine1,
		address.AddressLine2,
		address.City,
		address.State,
		address.PostalCode,
		address.Country,
	)

	if err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}

	return nil
}

// Update updates an existing address, scoped to its owner.
func (r *addressRepository) Update(ctx context.Context, address *domain.Address) error {
	query := `
		UPDATE user_addresses
		SET address_line1 = $3, address_line2 = $4, city = $5, state = $6, postal_code = $7, country = $8
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		address.ID,
		address.UserID,
		address.AddressLine1,
		address.AddressLine2,
		address.City,
		address.State,
		address.PostalCode,
		address.Country,
	)

	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("address with id %s not found: %w", address.ID, ErrNotFound)
	}

	return nil
}

// Delete deletes an address owned by the given user.
func (r *addressRepository) Delete(ctx context.Context, addressID, userID string) error {
	query := `DELETE FROM user_addresses WHERE id = $1 AND user_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, addressID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("address with id %s not found: %w", addressID, ErrNotFound)
	}

	return nil
}
