package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/internal/apperr"
	"go-storefront/internal/dto"
	"go-storefront/internal/repository"
)

func newProductService(t *testing.T) ProductService {
	t.Helper()
	return NewProductService(repository.NewProductRepository(newTestDB(t)))
}

func seedCatalog(t *testing.T, svc ProductService) {
	t.Helper()
	ctx := context.Background()

	for _, p := range []dto.ProductPayload{
		{Title: "Alpha Sneaker", Description: "running shoe", Category: "footwear", Brand: "acme", Price: 50, TotalStock: 10},
		{Title: "Zeta Boot", Description: "leather boot", Category: "footwear", Brand: "globex", Price: 120, TotalStock: 4},
		{Title: "Mid Jacket", Description: "rain jacket", Category: "outerwear", Brand: "acme", Price: 80, TotalStock: 7},
	} {
		_, err := svc.Add(ctx, &p)
		require.NoError(t, err)
	}
}

func TestProduct_AddAndGet(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, &dto.ProductPayload{Title: "Alpha Sneaker", Price: 50, TotalStock: 10})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha Sneaker", got.Title)
	assert.Equal(t, 10, got.TotalStock)
}

func TestProduct_AddRequiresTitle(t *testing.T) {
	svc := newProductService(t)

	_, err := svc.Add(context.Background(), &dto.ProductPayload{Price: 50})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestProduct_EditUnknownProduct(t *testing.T) {
	svc := newProductService(t)

	_, err := svc.Edit(context.Background(), "missing", &dto.ProductPayload{Title: "x"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestProduct_DeleteTwice(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, &dto.ProductPayload{Title: "Alpha Sneaker", Price: 50, TotalStock: 10})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestProduct_ListFilteredByCategoryAndSort(t *testing.T) {
	svc := newProductService(t)
	seedCatalog(t, svc)

	products, err := svc.ListFiltered(context.Background(), &dto.ProductFilter{
		Category: "footwear",
		SortBy:   "price-hightolow",
	})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Zeta Boot", products[0].Title)
	assert.Equal(t, "Alpha Sneaker", products[1].Title)
}

func TestProduct_ListFilteredMultiValueBrand(t *testing.T) {
	svc := newProductService(t)
	seedCatalog(t, svc)

	products, err := svc.ListFiltered(context.Background(), &dto.ProductFilter{
		Brand:  "acme,globex",
		SortBy: "title-atoz",
	})
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Alpha Sneaker", products[0].Title)
	assert.Equal(t, "Zeta Boot", products[2].Title)
}

func TestProduct_SearchMatchesAcrossFields(t *testing.T) {
	svc := newProductService(t)
	seedCatalog(t, svc)
	ctx := context.Background()

	byTitle, err := svc.Search(ctx, "sneaker")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Alpha Sneaker", byTitle[0].Title)

	byBrand, err := svc.Search(ctx, "ACME")
	require.NoError(t, err)
	assert.Len(t, byBrand, 2)
}

func TestProduct_SearchEmptyKeyword(t *testing.T) {
	svc := newProductService(t)

	_, err := svc.Search(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
