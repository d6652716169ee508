package service

import (
	"context"

	"github.com/shopward/commerce-api/internal/domain"
	"github.com/shopward/commerce-api/internal/dto"
)

// Session is the pair of freshly issued tokens for a user. The refresh
// token has a matching row in the store by the time a Session is returned.
type Session struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}

// AuthService defines methods for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*Session, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*Session, error)
	// Refresh validates a presented refresh token against the store and
	// mints a fresh access token. The refresh token is not rotated.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Logout revokes every refresh token the user holds.
	Logout(ctx context.Context, userID string) error
	// OAuthLogin resolves a federated identity to a local user and issues
	// a session for it.
	OAuthLogin(ctx context.Context, identity domain.ExternalIdentity) (*Session, error)
}

// UserService defines methods for profile operations
type UserService interface {
	Get(ctx context.Context, userID string) (*dto.UserResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdateUserRequest) error
	Delete(ctx context.Context, userID string) error
}

// CatalogService defines methods for products and categories
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, req *dto.ProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, req *dto.ProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, req *dto.CategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// CartService defines methods for the per-user shopping cart
type CartService interface {
	Items(ctx context.Context, userID string) ([]*domain.CartItem, error)
	AddItem(ctx context.Context, userID string, req *dto.AddCartItemRequest) (int, error)
	UpdateItem(ctx context.Context, userID, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

// OrderService defines methods for order placement and tracking
type OrderService interface {
	Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (string, error)
	List(ctx context.Context, userID string) ([]*domain.Order, error)
	Get(ctx context.Context, orderID, userID string) (*domain.Order, []*domain.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
	Cancel(ctx context.Context, orderID, userID string) error
}

// AddressService defines methods for user addresses
type AddressService interface {
	List(ctx context.Context, userID string) ([]*domain.Address, error)
	Get(ctx context.Context, addressID, userID string) (*domain.Address, error)
	Create(ctx context.Context, userID string, req *dto.AddressRequest) (*domain.Address, error)
	Update(ctx context.Context, addressID, userID string, req *dto.AddressRequest) (*domain.Address, error)
	Delete(ctx context.Context, addressID, userID string) error
}
