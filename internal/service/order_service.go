package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopward/commerce-api/internal/domain"
	"github.com/shopward/commerce-api/internal/dto"
	"github.com/shopward/commerce-api/internal/repository"
)

// orderService implements OrderService interface
type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository) OrderService {
	return &orderService{orderRepo: orderRepo, cartRepo: cartRepo}
}

// Create places an order from the user's open cart. The store copies the
// cart lines into the order at their current prices, marks the cart
// ordered, and totals the order in one transaction.
func (s *orderService) Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (string, error) {
	cartID, err := s.cartRepo.FindOpenCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrEmptyCart
		}
		return "", fmt.Errorf("failed to find open cart: %w", err)
	}

	orderID, err := s.orderRepo.CreateFromCart(ctx, userID, cartID, req.ShippingFee, req.Tax, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyCart) {
			return "", ErrEmptyCart
		}
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	return orderID, nil
}

func (s *orderService) List(ctx context.Context, userID string) ([]*domain.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Get returns an order with its lines. Ownership is enforced in the query:
// another user's order is indistinguishable from a missing one.
func (s *orderService) Get(ctx context.Context, orderID, userID string) (*domain.Order, []*domain.OrderItem, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := s.orderRepo.ItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list order items: %w", err)
	}
	return order, items, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID, status string) error {
	if !domain.ValidOrderStatus(status) {
		return ErrInvalidStatus
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

// Cancel removes the user's order.
func (s *orderService) Cancel(ctx context.Context, orderID, userID string) error {
	if err := s.orderRepo.Delete(ctx, orderID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to cancel order: %w", err)
	}
	return nil
}
