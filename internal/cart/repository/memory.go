package repository

import (
	"context"
	"sync"

	"github.com/studimarket/storefront/internal/cart/domain"
)

// InMemoryCartRepository keeps carts in a map. Used by tests and by local
// development without Redis.
type InMemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string][]domain.LineItem
}

func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{carts: make(map[string][]domain.LineItem)}
}

func (r *InMemoryCartRepository) Load(_ context.Context, session string) ([]domain.LineItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.LineItem, len(r.carts[session]))
	copy(items, r.carts[session])
	return items, nil
}

func (r *InMemoryCartRepository) Save(_ context.Context, session string, items []domain.LineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]domain.LineItem, len(items))
	copy(stored, items)
	r.carts[session] = stored
	return nil
}

func (r *InMemoryCartRepository) Delete(_ context.Context, session string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, session)
	return nil
}
