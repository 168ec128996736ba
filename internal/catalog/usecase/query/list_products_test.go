package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studimarket/storefront/internal/catalog/domain"
	"github.com/studimarket/storefront/internal/catalog/repository"
)

func seededRepo(t *testing.T) *repository.InMemoryProductRepository {
	t.Helper()
	repo := repository.NewInMemoryProductRepository()
	products := []domain.Product{
		{ID: 1, Title: "Laptop", Category: "Electrónicos", Price: 1000, Stock: 3, RatingRate: 4.5, IsActive: true},
		{ID: 2, Title: "Mouse", Category: "Electrónicos", Price: 25, Stock: 10, RatingRate: 4.0, IsActive: true},
		{ID: 3, Title: "Polera", Category: "Ropa", Price: 10, Stock: 0, RatingRate: 3.0, IsActive: true},
		{ID: 4, Title: "Oculto", Category: "Ropa", Price: 5, Stock: 1, IsActive: false},
	}
	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
	}
	return repo
}

func TestListProducts_DefaultFilterReturnsActiveCatalog(t *testing.T) {
	handler := NewListProductsHandler(seededRepo(t))

	result, err := handler.Handle(ListProductsQuery{Filter: domain.DefaultFilterSpec()})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	require.Len(t, result.Products, 3)
	// Inactive products never surface
	for _, p := range result.Products {
		assert.True(t, p.IsActive)
	}
}

func TestListProducts_FilterAndPagination(t *testing.T) {
	handler := NewListProductsHandler(seededRepo(t))

	filter := domain.DefaultFilterSpec()
	filter.Category = "electró"

	result, err := handler.Handle(ListProductsQuery{Filter: filter, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Products, 1)
	assert.Equal(t, uint(1), result.Products[0].ID)

	result, err = handler.Handle(ListProductsQuery{Filter: filter, Limit: 1, Skip: 1})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, uint(2), result.Products[0].ID)
}

func TestListProducts_SkipBeyondEnd(t *testing.T) {
	handler := NewListProductsHandler(seededRepo(t))

	result, err := handler.Handle(ListProductsQuery{Filter: domain.DefaultFilterSpec(), Skip: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Empty(t, result.Products)
}

func TestGetProduct(t *testing.T) {
	handler := NewGetProductHandler(seededRepo(t))

	product, err := handler.Handle(GetProductQuery{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, "Mouse", product.Title)

	_, err = handler.Handle(GetProductQuery{ID: 99})
	assert.Error(t, err)

	_, err = handler.Handle(GetProductQuery{ID: 0})
	assert.Error(t, err)
}

func TestListCategories(t *testing.T) {
	handler := NewListCategoriesHandler(seededRepo(t))

	categories, err := handler.Handle()
	require.NoError(t, err)
	assert.Equal(t, []string{"Electrónicos", "Ropa"}, categories)
}
