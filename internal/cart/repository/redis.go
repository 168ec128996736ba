package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studimarket/storefront/internal/cart/domain"
	"github.com/studimarket/storefront/pkg/logger"
)

// Session carts expire after thirty days of inactivity
const cartTTL = 30 * 24 * time.Hour

// RedisCartRepository stores each session's cart as one JSON blob under
// cart:<session>, the server-side analog of the browser's localStorage key.
type RedisCartRepository struct {
	client *redis.Client
}

func NewRedisCartRepository(client *redis.Client) *RedisCartRepository {
	return &RedisCartRepository{client: client}
}

func cartKey(session string) string {
	return "cart:" + session
}

// Load reads and repairs the stored cart. A malformed blob or malformed
// entries are dropped and logged; the caller always gets a usable list.
func (r *RedisCartRepository) Load(ctx context.Context, session string) ([]domain.LineItem, error) {
	raw, err := r.client.Get(ctx, cartKey(session)).Bytes()
	if err == redis.Nil {
		return []domain.LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("session", session).
			Msg("Corrupt cart state discarded")
		return []domain.LineItem{}, nil
	}

	cleaned := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		if item.Valid() {
			cleaned = append(cleaned, item)
		}
	}
	if len(cleaned) != len(items) {
		logger.Warn(ctx).
			Str("session", session).
			Int("dropped", len(items)-len(cleaned)).
			Msg("Dropped malformed cart entries")
	}
	return cleaned, nil
}

func (r *RedisCartRepository) Save(ctx context.Context, session string, items []domain.LineItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}
	if err := r.client.Set(ctx, cartKey(session), raw, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *RedisCartRepository) Delete(ctx context.Context, session string) error {
	if err := r.client.Del(ctx, cartKey(session)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
