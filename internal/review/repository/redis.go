package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/studimarket/storefront/internal/review/domain"
	"github.com/studimarket/storefront/pkg/logger"
)

// RedisReviewRepository stores each product's reviews as one JSON blob
// under comments:<productID>. Reviews do not expire.
type RedisReviewRepository struct {
	client *redis.Client
}

func NewRedisReviewRepository(client *redis.Client) *RedisReviewRepository {
	return &RedisReviewRepository{client: client}
}

func reviewKey(productID uint) string {
	return fmt.Sprintf("comments:%d", productID)
}

// Load reads and repairs the stored reviews. Corrupt blobs are discarded,
// entries missing text or a sane rating are dropped.
func (r *RedisReviewRepository) Load(ctx context.Context, productID uint) ([]domain.Review, error) {
	raw, err := r.client.Get(ctx, reviewKey(productID)).Bytes()
	if err == redis.Nil {
		return []domain.Review{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	var reviews []domain.Review
	if err := json.Unmarshal(raw, &reviews); err != nil {
		logger.Warn(ctx).
			Err(err).
			Uint("product_id", productID).
			Msg("Corrupt review state discarded")
		return []domain.Review{}, nil
	}

	cleaned := make([]domain.Review, 0, len(reviews))
	for _, review := range reviews {
		if review.Valid() {
			cleaned = append(cleaned, review)
		}
	}
	return cleaned, nil
}

func (r *RedisReviewRepository) Append(ctx context.Context, productID uint, review domain.Review) error {
	reviews, err := r.Load(ctx, productID)
	if err != nil {
		return err
	}
	reviews = append(reviews, review)

	raw, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("failed to serialize reviews: %w", err)
	}
	if err := r.client.Set(ctx, reviewKey(productID), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save reviews: %w", err)
	}
	return nil
}
