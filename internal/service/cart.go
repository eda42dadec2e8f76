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

type CartService interface {
	AddToCart(ctx context.Context, userID, productID string, quantity int) (*dto.CartView, error)
	GetCart(ctx context.Context, userID string) (*dto.CartView, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*dto.CartView, error)
	DeleteItem(ctx context.Context, userID, productID string) (*dto.CartView, error)
}

type cartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartServiceImpl) AddToCart(ctx context.Context, userID, productID string, quantity int) (*dto.CartView, error) {
	if quantity <= 0 {
		return nil, apperr.Validation("quantity must be positive")
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	cart, err := s.findOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := &model.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.UpsertItem(ctx, item); err != nil {
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}

	return s.GetCart(ctx, userID)
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) (*dto.CartView, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Cart not found")
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}

	view := &dto.CartView{
		CartID: cart.ID,
		UserID: cart.UserID,
		Items:  make([]dto.CartItemView, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Product removed from the catalog after it was carted;
				// drop the stale line instead of failing the whole cart.
				if _, err := s.cartRepo.DeleteItem(ctx, cart.ID, item.ProductID); err != nil {
					return nil, fmt.Errorf("prune stale cart item: %w", err)
				}
				continue
			}
			return nil, fmt.Errorf("find product: %w", err)
		}

		view.Items = append(view.Items, dto.CartItemView{
			ProductID: product.ID,
			Title:     product.Title,
			Image:     product.Image,
			Price:     product.Price,
			SalePrice: product.SalePrice,
			Quantity:  item.Quantity,
		})
	}

	return view, nil
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*dto.CartView, error) {
	if quantity <= 0 {
		return nil, apperr.Validation("quantity must be positive")
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Cart not found")
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}

	updated, err := s.cartRepo.SetItemQuantity(ctx, cart.ID, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	if !updated {
		return nil, apperr.NotFound("Cart item not present")
	}

	return s.GetCart(ctx, userID)
}

func (s *cartServiceImpl) DeleteItem(ctx context.Context, userID, productID string) (*dto.CartView, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Cart not found")
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}

	deleted, err := s.cartRepo.DeleteItem(ctx, cart.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("delete cart item: %w", err)
	}
	if !deleted {
		return nil, apperr.NotFound("Cart item not present")
	}

	return s.GetCart(ctx, userID)
}

func (s *cartServiceImpl) findOrCreateCart(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find cart: %w", err)
	}

	cart = &model.Cart{
		ID:     uuid.NewString(),
		UserID: userID,
	}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}
