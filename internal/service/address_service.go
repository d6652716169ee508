package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopward/commerce-api/internal/domain"
	"github.com/shopward/commerce-api/internal/dto"
	"github.com/shopward/commerce-api/internal/repository"
)

// addressService implements AddressService interface
type addressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService creates a new address service
func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) List(ctx context.Context, userID string) ([]*domain.Address, error) {
	addresses, err := s.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

func (s *addressService) Get(ctx context.Context, addressID, userID string) (*domain.Address, error) {
	address, err := s.addressRepo.GetByID(ctx, addressID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	return address, nil
}

func (s *addressService) Create(ctx context.Context, userID string, req *dto.AddressRequest) (*domain.Address, error) {
	address := &domain.Address{
		UserID:       userID,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return address, nil
}

func (s *addressService) Update(ctx context.Context, addressID, userID string, req *dto.AddressRequest) (*domain.Address, error) {
	address, err := s.addressRepo.GetByID(ctx, addressID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}

	address.AddressLine1 = req.AddressLine1
	address.AddressLine2 = req.AddressLine2
	address.City = req.City
	address.State = req.State
	address.PostalCode = req.PostalCode
	address.Country = req.Country

	if err := s.addressRepo.Update(ctx, address); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return address, nil
}

func (s *addressService) Delete(ctx context.Context, addressID, userID string) error {
	if err := s.addressRepo.Delete(ctx, addressID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}
