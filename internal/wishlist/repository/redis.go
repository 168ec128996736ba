package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studimarket/storefront/pkg/logger"
)

// Wishlists keep the same inactivity window as carts
const wishlistTTL = 30 * 24 * time.Hour

// RedisWishlistRepository stores each session's saved ids as one JSON
// array under wishlist:<session>.
type RedisWishlistRepository struct {
	client *redis.Client
}

func NewRedisWishlistRepository(client *redis.Client) *RedisWishlistRepository {
	return &RedisWishlistRepository{client: client}
}

func wishlistKey(session string) string {
	return "wishlist:" + session
}

// Load reads and repairs the stored wishlist. Corrupt blobs are discarded,
// zero ids are dropped.
func (r *RedisWishlistRepository) Load(ctx context.Context, session string) ([]uint, error) {
	raw, err := r.client.Get(ctx, wishlistKey(session)).Bytes()
	if err == redis.Nil {
		return []uint{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("session", session).
			Msg("Corrupt wishlist state discarded")
		return []uint{}, nil
	}

	cleaned := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != 0 {
			cleaned = append(cleaned, id)
		}
	}
	return cleaned, nil
}

func (r *RedisWishlistRepository) Save(ctx context.Context, session string, ids []uint) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to serialize wishlist: %w", err)
	}
	if err := r.client.Set(ctx, wishlistKey(session), raw, wishlistTTL).Err(); err != nil {
		return fmt.Errorf("failed to save wishlist: %w", err)
	}
	return nil
}

func (r *RedisWishlistRepository) Delete(ctx context.Context, session string) error {
	if err := r.client.Del(ctx, wishlistKey(session)).Err(); err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}
	return nil
}
