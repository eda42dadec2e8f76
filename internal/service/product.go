package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-storefront/internal/apperr"
	"go-storefront/internal/dto"
	"go-storefront/internal/model"
	"go-storefront/internal/repository"
)

type ProductService interface {
	Add(ctx context.Context, payload *dto.ProductPayload) (*model.Product, error)
	Edit(ctx context.Context, productID string, payload *dto.ProductPayload) (*model.Product, error)
	Delete(ctx context.Context, productID string) error
	GetAll(ctx context.Context) ([]*model.Product, error)
	GetByID(ctx context.Context, productID string) (*model.Product, error)
	ListFiltered(ctx context.Context, filter *dto.ProductFilter) ([]*model.Product, error)
	Search(ctx context.Context, keyword string) ([]*model.Product, error)
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productServiceImpl{productRepo: productRepo}
}

func (s *productServiceImpl) Add(ctx context.Context, payload *dto.ProductPayload) (*model.Product, error) {
	if payload.Title == "" {
		return nil, apperr.Validation("product title is required")
	}
	if payload.Price < 0 || payload.TotalStock < 0 {
		return nil, apperr.Validation("price and stock must not be negative")
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Brand:       payload.Brand,
		Image:       payload.Image,
		Price:       payload.Price,
		SalePrice:   payload.SalePrice,
		TotalStock:  payload.TotalStock,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (s *productServiceImpl) Edit(ctx context.Context, productID string, payload *dto.ProductPayload) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	product.Title = payload.Title
	product.Description = payload.Description
	product.Category = payload.Category
	product.Brand = payload.Brand
	product.Image = payload.Image
	product.Price = payload.Price
	product.SalePrice = payload.SalePrice
	product.TotalStock = payload.TotalStock

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

func (s *productServiceImpl) Delete(ctx context.Context, productID string) error {
	deleted, err := s.productRepo.Delete(ctx, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return apperr.NotFound("Product not found")
	}
	return nil
}

func (s *productServiceImpl) GetAll(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *productServiceImpl) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

func (s *productServiceImpl) ListFiltered(ctx context.Context, filter *dto.ProductFilter) ([]*model.Product, error) {
	repoFilter := &repository.ProductListFilter{
		Categories: splitCSV(filter.Category),
		Brands:     splitCSV(filter.Brand),
		SortBy:     filter.SortBy,
	}
	return s.productRepo.List(ctx, repoFilter)
}

func (s *productServiceImpl) Search(ctx context.Context, keyword string) ([]*model.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperr.Validation("search keyword is required")
	}
	return s.productRepo.Search(ctx, keyword)
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
