package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopward/commerce-api/internal/domain"
	"github.com/shopward/commerce-api/internal/dto"
	"github.com/shopward/commerce-api/internal/repository"
)

// cartService implements CartService interface
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

// ensureCart returns the user's open cart id, creating the cart on first
// use. Each user has at most one open cart at a time.
func (s *cartService) ensureCart(ctx context.Context, userID string) (string, error) {
	cartID, err := s.cartRepo.FindOpenCart(ctx, userID)
	if err == nil {
		return cartID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("failed to find open cart: %w", err)
	}

	cartID, err = s.cartRepo.CreateCart(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to create cart: %w", err)
	}
	return cartID, nil
}

// Items returns the lines of the user's open cart. A user with no cart yet
// has an empty cart, not a missing one.
func (s *cartService) Items(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	cartID, err := s.cartRepo.FindOpenCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []*domain.CartItem{}, nil
		}
		return nil, fmt.Errorf("failed to find open cart: %w", err)
	}

	items, err := s.cartRepo.Items(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

// AddItem puts a product in the cart, incrementing the quantity when the
// line already exists. Returns the resulting line quantity.
func (s *cartService) AddItem(ctx context.Context, userID string, req *dto.AddCartItemRequest) (int, error) {
	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to get product: %w", err)
	}

	cartID, err := s.ensureCart(ctx, userID)
	if err != nil {
		return 0, err
	}

	quantity, err := s.cartRepo.AddItem(ctx, cartID, req.ProductID, req.Quantity)
	if err != nil {
		return 0, fmt.Errorf("failed to add cart item: %w", err)
	}
	return quantity, nil
}

// UpdateItem sets a cart line to an exact quantity.
func (s *cartService) UpdateItem(ctx context.Context, userID, productID string, quantity int) error {
	cartID, err := s.cartRepo.FindOpenCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to find open cart: %w", err)
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, cartID, productID, quantity); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	return nil
}

// RemoveItem deletes one line from the cart.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID string) error {
	cartID, err := s.cartRepo.FindOpenCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to find open cart: %w", err)
	}

	if err := s.cartRepo.RemoveItem(ctx, cartID, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Clear empties the cart. Clearing a nonexistent cart is a no-op.
func (s *cartService) Clear(ctx context.Context, userID string) error {
	cartID, err := s.cartRepo.FindOpenCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find open cart: %w", err)
	}

	if err := s.cartRepo.Clear(ctx, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
