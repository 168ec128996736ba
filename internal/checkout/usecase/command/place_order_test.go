package command

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/studimarket/storefront/internal/cart/domain"
	cartrepo "github.com/studimarket/storefront/internal/cart/repository"
	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	catalogrepo "github.com/studimarket/storefront/internal/catalog/repository"
	"github.com/studimarket/storefront/internal/checkout/domain"
	checkoutrepo "github.com/studimarket/storefront/internal/checkout/repository"
	"github.com/studimarket/storefront/kafka"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.OrderPlacedEvent
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, event kafka.OrderPlacedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func validCommand(session string) PlaceOrderCommand {
	return PlaceOrderCommand{
		Session:       session,
		Name:          "Ana Torres",
		Email:         "ana@example.com",
		Address:       "Av. Universidad 123",
		City:          "Monterrey",
		PostalCode:    "64000",
		PaymentMethod: "card",
	}
}

func checkoutFixture(t *testing.T) (*PlaceOrderHandler, *cartrepo.InMemoryCartRepository, *checkoutrepo.InMemoryOrderRepository, *recordingPublisher) {
	t.Helper()

	catalog := catalogrepo.NewInMemoryProductRepository()
	products := []catalogdomain.Product{
		{Title: "Cuaderno profesional", Price: 45.50, Stock: 10, IsActive: true},
		{Title: "Mochila escolar", Price: 320, Stock: 3, IsActive: true},
	}
	for i := range products {
		require.NoError(t, catalog.Create(&products[i]))
	}

	carts := cartrepo.NewInMemoryCartRepository()
	orders := checkoutrepo.NewInMemoryOrderRepository()
	publisher := &recordingPublisher{}
	handler := NewPlaceOrderHandler(orders, carts, catalog, publisher, 0)
	return handler, carts, orders, publisher
}

func TestPlaceOrderCompletes(t *testing.T) {
	handler, carts, orders, publisher := checkoutFixture(t)
	ctx := context.Background()
	require.NoError(t, carts.Save(ctx, "s1", []cartdomain.LineItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}))

	order, err := handler.Handle(ctx, validCommand("s1"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderID, "ORD-"))
	assert.Equal(t, domain.StatusCompleted, order.Status)
	assert.Equal(t, 411.0, order.Amount)
	require.Len(t, order.Items, 2)

	stored, err := orders.FindByOrderID(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)

	items, err := carts.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, order.OrderID, publisher.events[0].OrderID)
	assert.Equal(t, uint(1), publisher.events[0].ProductID)
	assert.Equal(t, int32(2), publisher.events[0].Quantity)
}

func TestPlaceOrderValidation(t *testing.T) {
	handler, carts, _, _ := checkoutFixture(t)
	ctx := context.Background()
	require.NoError(t, carts.Save(ctx, "s1", []cartdomain.LineItem{{ProductID: 1, Quantity: 1}}))

	cmd := validCommand("s1")
	cmd.Name = ""
	cmd.Email = "not-an-email"

	_, err := handler.Handle(ctx, cmd)
	require.Error(t, err)

	var errs domain.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.NotContains(t, errs, "address")
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	handler, _, _, _ := checkoutFixture(t)

	_, err := handler.Handle(context.Background(), validCommand("s-empty"))
	require.Error(t, err)

	var errs domain.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs, "cart")
}

func TestPlaceOrderExcludesStaleLines(t *testing.T) {
	handler, carts, _, publisher := checkoutFixture(t)
	ctx := context.Background()
	require.NoError(t, carts.Save(ctx, "s1", []cartdomain.LineItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 999, Quantity: 5},
	}))

	order, err := handler.Handle(ctx, validCommand("s1"))
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 45.50, order.Amount)
	require.Len(t, publisher.events, 1)
}

func TestPlaceOrderWithoutPublisher(t *testing.T) {
	catalog := catalogrepo.NewInMemoryProductRepository()
	product := catalogdomain.Product{Title: "Cuaderno", Price: 10, Stock: 1, IsActive: true}
	require.NoError(t, catalog.Create(&product))

	carts := cartrepo.NewInMemoryCartRepository()
	ctx := context.Background()
	require.NoError(t, carts.Save(ctx, "s1", []cartdomain.LineItem{{ProductID: 1, Quantity: 1}}))

	handler := NewPlaceOrderHandler(checkoutrepo.NewInMemoryOrderRepository(), carts, catalog, nil, 0)
	order, err := handler.Handle(ctx, validCommand("s1"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, order.Status)
}
