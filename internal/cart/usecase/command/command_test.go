package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studimarket/storefront/internal/cart/domain"
	"github.com/studimarket/storefront/internal/cart/repository"
)

func TestAddItemMergesQuantities(t *testing.T) {
	repo := repository.NewInMemoryCartRepository()
	handler := NewAddItemHandler(repo)
	ctx := context.Background()

	_, err := handler.Handle(ctx, AddItemCommand{Session: "s1", ProductID: 7, Quantity: 2})
	require.NoError(t, err)

	items, err := handler.Handle(ctx, AddItemCommand{Session: "s1", ProductID: 7, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, uint(7), items[0].ProductID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	repo := repository.NewInMemoryCartRepository()
	handler := NewAddItemHandler(repo)

	items, err := handler.Handle(context.Background(), AddItemCommand{Session: "s1", ProductID: 7})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestAddItemRequiresSessionAndProduct(t *testing.T) {
	repo := repository.NewInMemoryCartRepository()
	handler := NewAddItemHandler(repo)
	ctx := context.Background()

	_, err := handler.Handle(ctx, AddItemCommand{ProductID: 7, Quantity: 1})
	assert.Error(t, err)

	_, err = handler.Handle(ctx, AddItemCommand{Session: "s1", Quantity: 1})
	assert.Error(t, err)
}

func TestSetQuantityOverwrites(t *testing.T) {
	repo := repository.NewInMemoryCartRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "s1", []domain.LineItem{{ProductID: 7, Quantity: 2}}))

	handler := NewSetQuantityHandler(repo)
	items, err := handler.Handle(ctx, SetQuantityCommand{Session: "s1", ProductID: 7, Quantity: 9})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 9, items[0].Quantity)
}

func TestSetQuantityZeroRemovesLineItem(t *testing.T) {
	repo := repository.NewInMemoryCartRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "s1", []domain.LineItem{
		{ProductID: 7, Quantity: 2},
		{ProductID: 8, Quantity: 1},
	}))

	setHandler := NewSetQuantityHandler(repo)
	setItems, err := setHandler.Handle(ctx, SetQuantityCommand{Session: "s1", ProductID: 7, Quantity: 0})
	require.NoError(t, err)

	removeRepo := repository.NewInMemoryCartRepository()
	require.NoError(t, removeRepo.Save(ctx, "s1", []domain.LineItem{
		{ProductID: 7, Quantity: 2},
		{ProductID: 8, Quantity: 1},
	}))
	removeHandler := NewRemoveItemHandler(removeRepo)
	removedItems, err := removeHandler.Handle(ctx, RemoveItemCommand{Session: "s1", ProductID: 7})
	require.NoError(t, err)

	assert.Equal(t, removedItems, setItems)
	require.Len(t, setItems, 1)
	assert.Equal(t, uint(8), setItems[0].ProductID)
}

func TestRemoveAbsentItemIsNoOp(t *testing.T) {
	repo := repository.NewInMemoryCartRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "s1", []domain.LineItem{{ProductID: 7, Quantity: 2}}))

	handler := NewRemoveItemHandler(repo)
	items, err := handler.Handle(ctx, RemoveItemCommand{Session: "s1", ProductID: 999})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, uint(7), items[0].ProductID)
}

func TestClearCartEmptiesSession(t *testing.T) {
	repo := repository.NewInMemoryCartRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "s1", []domain.LineItem{{ProductID: 7, Quantity: 2}}))

	handler := NewClearCartHandler(repo)
	require.NoError(t, handler.Handle(ctx, ClearCartCommand{Session: "s1"}))

	items, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartsAreIsolatedBySession(t *testing.T) {
	repo := repository.NewInMemoryCartRepository()
	handler := NewAddItemHandler(repo)
	ctx := context.Background()

	_, err := handler.Handle(ctx, AddItemCommand{Session: "alice", ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	_, err = handler.Handle(ctx, AddItemCommand{Session: "bob", ProductID: 2, Quantity: 4})
	require.NoError(t, err)

	aliceItems, err := repo.Load(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, aliceItems, 1)
	assert.Equal(t, uint(1), aliceItems[0].ProductID)

	bobItems, err := repo.Load(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobItems, 1)
	assert.Equal(t, uint(2), bobItems[0].ProductID)
}
