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

// cartRepository implements CartRepository interface
type cartRepository struct {
	db *database.Postgres
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *database.Postgres) CartRepository {
	return &cartRepository{db: db}
}

// FindOpenCart returns the id of the user's open cart.
func (r *cartRepository) FindOpenCart(ctx context.Context, userID string) (string, error) {
	query := `SELECT id FROM carts WHERE user_id = $1 AND status = $2`

	var cartID string
	err := r.db.DB.QueryRowContext(ctx, query, userID, domain.CartStatusOpen).Scan(&cartID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("open cart for user %s not found: %w", userID, ErrNotFound)
		}
		return "", fmt.Errorf("failed to find open cart: %w", err)
	}

	return cartID, nil
}

// CreateCart opens a new cart for the user and returns its id.
func (r *cartRepository) CreateCart(ctx context.Context, userID string) (string, error) {
	query := `INSERT INTO carts (id, user_id, status) VALUES ($1, $2, $3) RETURNING id`

	var cartID string
	err := r.db.DB.QueryRowContext(ctx, query, uuid.New().String(), userID, domain.CartStatusOpen).Scan(&cartID)
	if err != nil {
		return "", fmt.Errorf("failed to create cart: %w", err)
	}

	return cartID, nil
}

// Items returns the cart lines via the get_user_cart function.
func (r *cartRepository) Items(ctx context.Context, cartID string) ([]*domain.CartItem, error) {
	query := `SELECT product_id, name, unit_price, quantity, line_total FROM get_user_cart($1)`

	rows, err := r.db.DB.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	var items []*domain.CartItem
	for rows.Next() {
		item := &domain.CartItem{}
		err := rows.Scan(
			&item.ProductID,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
			&item.LineTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return items, nil
}

// AddItem upserts a cart line via add_item_to_cart and returns the
// resulting quantity.
func (r *cartRepository) AddItem(ctx context.Context, cartID, productID string, quantity int) (int, error) {
	query := `SELECT add_item_to_cart($1, $2, $3)`

	var total int
	err := r.db.DB.QueryRowContext(ctx, query, cartID, productID, quantity).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to add item to cart: %w", err)
	}

	return total, nil
}

// UpdateItemQuantity sets the quantity of an existing cart line.
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	query := `UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND product_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, cartID, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("cart item not found: %w", ErrNotFound)
	}

	return nil
}

// RemoveItem deletes a single cart line.
func (r *cartRepository) RemoveItem(ctx context.Context, cartID, productID string) error {
	query := `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, cartID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("cart item not found: %w", ErrNotFound)
	}

	return nil
}

// Clear removes every line from the cart. Clearing an empty cart succeeds.
func (r *cartRepository) Clear(ctx context.Context, cartID string) error {
	query := `DELETE FROM cart_items WHERE cart_id = $1`

	_, err := r.db.DB.ExecContext(ctx, query, cartID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
