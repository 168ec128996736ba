package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/studimarket/storefront/internal/cart/domain"
	cartrepo "github.com/studimarket/storefront/internal/cart/repository"
	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	catalogrepo "github.com/studimarket/storefront/internal/catalog/repository"
)

func seededCatalog(t *testing.T) *catalogrepo.InMemoryProductRepository {
	t.Helper()
	repo := catalogrepo.NewInMemoryProductRepository()
	products := []catalogdomain.Product{
		{Title: "Cuaderno profesional", Price: 45.50, Stock: 10, Category: "papeleria", IsActive: true},
		{Title: "Mochila escolar", Price: 320, Stock: 3, Category: "mochilas", IsActive: true},
	}
	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
	}
	return repo
}

func TestGetCartJoinsCatalog(t *testing.T) {
	carts := cartrepo.NewInMemoryCartRepository()
	catalog := seededCatalog(t)
	ctx := context.Background()

	require.NoError(t, carts.Save(ctx, "s1", []cartdomain.LineItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}))

	handler := NewGetCartHandler(carts, catalog)
	view, err := handler.Handle(ctx, GetCartQuery{Session: "s1"})
	require.NoError(t, err)

	require.Len(t, view.Items, 2)
	assert.Equal(t, "Cuaderno profesional", view.Items[0].Title)
	assert.Equal(t, 91.0, view.Items[0].Subtotal)
	assert.Equal(t, 411.0, view.Total)
	assert.Equal(t, 3, view.Count)
}

func TestGetCartOmitsUnknownProducts(t *testing.T) {
	carts := cartrepo.NewInMemoryCartRepository()
	catalog := seededCatalog(t)
	ctx := context.Background()

	require.NoError(t, carts.Save(ctx, "s1", []cartdomain.LineItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 999, Quantity: 4},
	}))

	handler := NewGetCartHandler(carts, catalog)
	view, err := handler.Handle(ctx, GetCartQuery{Session: "s1"})
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, uint(1), view.Items[0].ProductID)
	assert.Equal(t, 45.50, view.Total)
	assert.Equal(t, 5, view.Count)
}

func TestGetCartEmptySession(t *testing.T) {
	handler := NewGetCartHandler(cartrepo.NewInMemoryCartRepository(), seededCatalog(t))
	view, err := handler.Handle(context.Background(), GetCartQuery{Session: "fresh"})
	require.NoError(t, err)

	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)
	assert.Zero(t, view.Count)
}
