package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"go-storefront/internal/model"
)

// ProductListFilter narrows and orders the shop listing. Categories and
// Brands are OR'd within themselves and AND'd against each other.
type ProductListFilter struct {
	Categories []string
	Brands     []string
	SortBy     string
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, productID string) (bool, error)
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindAll(ctx context.Context) ([]*model.Product, error)
	List(ctx context.Context, filter *ProductListFilter) ([]*model.Product, error)
	Search(ctx context.Context, keyword string) ([]*model.Product, error)

	// DecrementStock atomically subtracts quantity from the product's stock,
	// refusing to go negative. Returns false when the product is missing or
	// the remaining stock is insufficient.
	DecrementStock(tx *gorm.DB, productID string, quantity int) (bool, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{db: db}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepoImpl) Delete(ctx context.Context, productID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.Product{})

	return result.RowsAffected > 0, result.Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindAll(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) List(ctx context.Context, filter *ProductListFilter) ([]*model.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.Categories)
	}
	if len(filter.Brands) > 0 {
		query = query.Where("brand IN ?", filter.Brands)
	}

	switch filter.SortBy {
	case "price-lowtohigh":
		query = query.Order("price ASC")
	case "price-hightolow":
		query = query.Order("price DESC")
	case "title-atoz":
		query = query.Order("title ASC")
	case "title-ztoa":
		query = query.Order("title DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var products []*model.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Search(ctx context.Context, keyword string) ([]*model.Product, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"

	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ? OR LOWER(brand) LIKE ?",
			pattern, pattern, pattern, pattern,
		).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) DecrementStock(tx *gorm.DB, productID string, quantity int) (bool, error) {
	result := tx.Model(&model.Product{}).
		Where("id = ? AND total_stock >= ?", productID, quantity).
		Update("total_stock", gorm.Expr("total_stock - ?", quantity))

	return result.RowsAffected > 0, result.Error
}
