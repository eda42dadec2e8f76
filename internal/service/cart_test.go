package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-storefront/internal/apperr"
	"go-storefront/internal/model"
	"go-storefront/internal/repository"
)

func newCartService(t *testing.T) (CartService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	svc := NewCartService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
	)
	return svc, db
}

func TestCart_AddCreatesCartAndLine(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()

	seedProduct(t, db, "P1", 10, 5)

	view, err := svc.AddToCart(ctx, "user-1", "P1", 2)
	require.NoError(t, err)

	assert.Equal(t, "user-1", view.UserID)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "P1", view.Items[0].ProductID)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 10.0, view.Items[0].Price)
}

func TestCart_AddSameProductBumpsQuantity(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()

	seedProduct(t, db, "P1", 10, 5)

	_, err := svc.AddToCart(ctx, "user-1", "P1", 2)
	require.NoError(t, err)

	view, err := svc.AddToCart(ctx, "user-1", "P1", 3)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)

	// Still a single cart row for the user.
	var cartCount int64
	require.NoError(t, db.Model(&model.Cart{}).Where("user_id = ?", "user-1").Count(&cartCount).Error)
	assert.Equal(t, int64(1), cartCount)
}

func TestCart_AddUnknownProduct(t *testing.T) {
	svc, _ := newCartService(t)

	_, err := svc.AddToCart(context.Background(), "user-1", "missing", 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCart_AddRejectsNonPositiveQuantity(t *testing.T) {
	svc, db := newCartService(t)
	seedProduct(t, db, "P1", 10, 5)

	_, err := svc.AddToCart(context.Background(), "user-1", "P1", 0)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCart_GetPrunesDeletedProducts(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()

	seedProduct(t, db, "P1", 10, 5)
	seedProduct(t, db, "P2", 5, 3)

	_, err := svc.AddToCart(ctx, "user-1", "P1", 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "user-1", "P2", 1)
	require.NoError(t, err)

	require.NoError(t, db.Where("id = ?", "P2").Delete(&model.Product{}).Error)

	view, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "P1", view.Items[0].ProductID)

	// The stale line is gone from the table, not just the view.
	var itemCount int64
	require.NoError(t, db.Model(&model.CartItem{}).Where("product_id = ?", "P2").Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestCart_UpdateQuantity(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()

	seedProduct(t, db, "P1", 10, 5)
	_, err := svc.AddToCart(ctx, "user-1", "P1", 2)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(ctx, "user-1", "P1", 4)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 4, view.Items[0].Quantity)
}

func TestCart_UpdateQuantityItemNotPresent(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()

	seedProduct(t, db, "P1", 10, 5)
	seedProduct(t, db, "P2", 5, 3)
	_, err := svc.AddToCart(ctx, "user-1", "P1", 2)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, "user-1", "P2", 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCart_DeleteItem(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()

	seedProduct(t, db, "P1", 10, 5)
	seedProduct(t, db, "P2", 5, 3)
	_, err := svc.AddToCart(ctx, "user-1", "P1", 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "user-1", "P2", 1)
	require.NoError(t, err)

	view, err := svc.DeleteItem(ctx, "user-1", "P1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "P2", view.Items[0].ProductID)
}

func TestCart_GetMissingCart(t *testing.T) {
	svc, _ := newCartService(t)

	_, err := svc.GetCart(context.Background(), "user-without-cart")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
