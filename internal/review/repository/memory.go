package repository

import (
	"context"
	"sync"

	"github.com/studimarket/storefront/internal/review/domain"
)

// InMemoryReviewRepository keeps reviews in a map. Used by tests and by
// local development without Redis.
type InMemoryReviewRepository struct {
	mu      sync.RWMutex
	reviews map[uint][]domain.Review
}

func NewInMemoryReviewRepository() *InMemoryReviewRepository {
	return &InMemoryReviewRepository{reviews: make(map[uint][]domain.Review)}
}

func (r *InMemoryReviewRepository) Load(_ context.Context, productID uint) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviews := make([]domain.Review, len(r.reviews[productID]))
	copy(reviews, r.reviews[productID])
	return reviews, nil
}

func (r *InMemoryReviewRepository) Append(_ context.Context, productID uint, review domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reviews[productID] = append(r.reviews[productID], review)
	return nil
}
