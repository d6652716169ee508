package repository

import (
	"context"

	"github.com/shopward/commerce-api/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	// ResolveOAuth maps a federated identity to a local user id, creating
	// the user and identity link atomically when absent.
	ResolveOAuth(ctx context.Context, identity domain.ExternalIdentity) (string, error)
}

// TokenRepository defines methods for refresh token rows
type TokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
}

// ProductRepository defines methods for catalog products
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines methods for product categories
type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// CartRepository defines methods for carts and their items
type CartRepository interface {
	// FindOpenCart returns the user's open cart id, ErrNotFound if none.
	FindOpenCart(ctx context.Context, userID string) (string, error)
	CreateCart(ctx context.Context, userID string) (string, error)
	Items(ctx context.Context, cartID string) ([]*domain.CartItem, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) (int, error)
	UpdateItemQuantity(ctx context.Context, cartID, productID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) error
}

// OrderRepository defines methods for orders
type OrderRepository interface {
	CreateFromCart(ctx context.Context, userID, cartID string, shippingFee, tax float64, paymentMethod string) (string, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	GetByID(ctx context.Context, orderID, userID string) (*domain.Order, error)
	ItemsByOrder(ctx context.Context, orderID string) ([]*domain.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
	Delete(ctx context.Context, orderID, userID string) error
}

// AddressRepository defines methods for user addresses
type AddressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Address, error)
	GetByID(ctx context.Context, addressID, userID string) (*domain.Address, error)
	Create(ctx context.Context, address *domain.Address) error
	Update(ctx context.Context, address *domain.Address) error
	Delete(ctx context.Context, addressID, userID string) error
}
