package repository

import (
	"context"
	"sync"
)

// InMemoryWishlistRepository keeps wishlists in a map. Used by tests and
// by local development without Redis.
type InMemoryWishlistRepository struct {
	mu    sync.RWMutex
	lists map[string][]uint
}

func NewInMemoryWishlistRepository() *InMemoryWishlistRepository {
	return &InMemoryWishlistRepository{lists: make(map[string][]uint)}
}

func (r *InMemoryWishlistRepository) Load(_ context.Context, session string) ([]uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]uint, len(r.lists[session]))
	copy(ids, r.lists[session])
	return ids, nil
}

func (r *InMemoryWishlistRepository) Save(_ context.Context, session string, ids []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]uint, len(ids))
	copy(stored, ids)
	r.lists[session] = stored
	return nil
}

func (r *InMemoryWishlistRepository) Delete(_ context.Context, session string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.lists, session)
	return nil
}
