package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopward/commerce-api/internal/domain"
	"github.com/shopward/commerce-api/pkg/database"
)

// orderRepository implements OrderRepository interface
type orderRepository struct {
	db *database.Postgres
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *database.Postgres) OrderRepository {
	return &orderRepository{db: db}
}

// CreateFromCart places an order via the create_order_from_cart function,
// which totals the cart, snapshots prices and closes the cart atomically.
func (r *orderRepository) CreateFromCart(ctx context.Context, userID, cartID string, shippingFee, tax float64, paymentMethod string) (string, error) {
	query := `SELECT create_order_from_cart($1, $2, $3, $4, $5)`

	var orderID string
	err := r.db.DB.QueryRowContext(ctx, query, userID, cartID, shippingFee, tax, paymentMethod).Scan(&orderID)
	if err != nil {
		// P0001 is the raise_exception code used for the empty-cart guard.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "P0001" {
			return "", fmt.Errorf("cannot order from an empty cart: %w", ErrEmptyCart)
		}
		return "", fmt.Errorf("failed to create order from cart: %w", err)
	}

	return orderID, nil
}

const orderColumns = `id, user_id, status, total, shipping_fee, tax, payment_method, created_at`

// ListByUser retrieves all orders placed by a user
func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.Total,
			&order.ShippingFee,
			&order.Tax,
			&order.PaymentMethod,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, nil
}

// GetByID retrieves an order owned by the given user.
func (r *orderRepository) GetByID(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`

	order := &domain.Order{}
	err := r.db.DB.QueryRowContext(ctx, query, orderID, userID).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.Total,
		&order.ShippingFee,
		&order.Tax,
		&order.PaymentMethod,
		&order.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order with id %s not found: %w", orderID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by id: %w", err)
	}

	return order, nil
}

// ItemsByOrder retrieves the lines of an order
func (r *orderRepository) ItemsByOrder(ctx context.Context, orderID string) ([]*domain.OrderItem, error) {
	query := `SELECT order_id, product_id, quantity, unit_price FROM order_items WHERE order_id = $1`

	rows, err := r.db.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []*domain.OrderItem
	for rows.Next() {
		item := &domain.OrderItem{}
		if err := rows.Scan(&item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	return items, nil
}

// UpdateStatus moves an order to a new status.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	query := `UPDATE orders SET status = $2 WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, orderID, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("order with id %s not found: %w", orderID, ErrNotFound)
	}

	return nil
}

// Delete cancels an order owned by the given user.
func (r *orderRepository) Delete(ctx context.Context, orderID, userID string) error {
	query := `DELETE FROM orders WHERE id = $1 AND user_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, orderID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("order with id %s not found: %w", orderID, ErrNotFound)
	}

	return nil
}
