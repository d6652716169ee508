package domain

import "time"

// Cart statuses. A user has at most one open cart in normal operation;
// placing an order moves the cart to ordered.
const (
	CartStatusOpen    = "open"
	CartStatusOrdered = "ordered"
)

type Cart struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CartItem is one product line in a cart, joined with catalog data for
// presentation.
type CartItem struct {
	ProductID string  `json:"product_id" db:"product_id"`
	Name      string  `json:"name" db:"name"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
	Quantity  int     `json:"quantity" db:"quantity"`
	LineTotal float64 `json:"line_total" db:"line_total"`
}
