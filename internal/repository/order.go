package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"go-storefront/internal/model"
)

type OrderRepository interface {
	// Create persists the order together with its item snapshots.
	// Tx-scoped so callers can bundle it with other writes.
	Create(tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	FindAllByUser(ctx context.Context, userID string) ([]*model.Order, error)
	FindAll(ctx context.Context) ([]*model.Order, error)

	// MarkPaid flips the order to paid/confirmed and records the gateway
	// identifiers, but only while the order is still pending payment. The
	// conditional update is the idempotency guard: a second capture matches
	// zero rows and reports false.
	MarkPaid(tx *gorm.DB, orderID, paymentID, payerID string) (bool, error)

	UpdateStatus(ctx context.Context, orderID, status string) (bool, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{db: db}
}

func (r *orderRepoImpl) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindAllByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) FindAll(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("order_date DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) MarkPaid(tx *gorm.DB, orderID, paymentID, payerID string) (bool, error) {
	result := tx.Model(&model.Order{}).
		Where("id = ? AND payment_status = ?", orderID, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status": model.PaymentStatusPaid,
			"status":         model.OrderStatusConfirmed,
			"payment_id":     paymentID,
			"payer_id":       payerID,
			"updated_at":     time.Now(),
		})

	return result.RowsAffected > 0, result.Error
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, orderID, status string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	return result.RowsAffected > 0, result.Error
}
