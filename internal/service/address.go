package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-storefront/internal/apperr"
	"go-storefront/internal/dto"
	"go-storefront/internal/model"
	"go-storefront/internal/repository"
)

type AddressService interface {
	Add(ctx context.Context, payload *dto.AddressPayload) (*model.Address, error)
	GetByUser(ctx context.Context, userID string) ([]*model.Address, error)
	Update(ctx context.Context, userID, addressID string, payload *dto.AddressPayload) (*model.Address, error)
	Delete(ctx context.Context, userID, addressID string) error
}

type addressServiceImpl struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressServiceImpl{addressRepo: addressRepo}
}

func (s *addressServiceImpl) Add(ctx context.Context, payload *dto.AddressPayload) (*model.Address, error) {
	if payload.UserID == "" || payload.Address == "" || payload.City == "" {
		return nil, apperr.Validation("userId, address and city are required")
	}

	address := &model.Address{
		ID:      uuid.NewString(),
		UserID:  payload.UserID,
		Address: payload.Address,
		City:    payload.City,
		Pincode: payload.Pincode,
		Phone:   payload.Phone,
		Notes:   payload.Notes,
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	return address, nil
}

func (s *addressServiceImpl) GetByUser(ctx context.Context, userID string) ([]*model.Address, error) {
	return s.addressRepo.FindByUserID(ctx, userID)
}

func (s *addressServiceImpl) Update(ctx context.Context, userID, addressID string, payload *dto.AddressPayload) (*model.Address, error) {
	address, err := s.addressRepo.FindOne(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Address not found")
		}
		return nil, fmt.Errorf("find address: %w", err)
	}

	address.Address = payload.Address
	address.City = payload.City
	address.Pincode = payload.Pincode
	address.Phone = payload.Phone
	address.Notes = payload.Notes

	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	return address, nil
}

func (s *addressServiceImpl) Delete(ctx context.Context, userID, addressID string) error {
	deleted, err := s.addressRepo.Delete(ctx, userID, addressID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if !deleted {
		return apperr.NotFound("Address not found")
	}
	return nil
}
