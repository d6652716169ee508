package repository

import (
	"github.com/shopward/commerce-api/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User     UserRepository
	Token    TokenRepository
	Product  ProductRepository
	Category CategoryRepository
	Cart     CartRepository
	Order    OrderRepository
	Address  AddressRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Token:    NewTokenRepository(db),
		Product:  NewProductRepository(db),
		Category: NewCategoryRepository(db),
		Cart:     NewCartRepository(db),
		Order:    NewOrderRepository(db),
		Address:  NewAddressRepository(db),
	}
}
