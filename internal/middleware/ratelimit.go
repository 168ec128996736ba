package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studimarket/storefront/pkg/logger"
)

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
}

// DefaultRateLimitConfig returns the default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerWindow: 100,
		Window:            time.Minute,
	}
}

// RateLimit enforces a fixed-window per-client limit backed by Redis.
// A nil client disables limiting; Redis failures fail open.
func RateLimit(redisClient *redis.Client, config RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if redisClient == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := fmt.Sprintf("ratelimit:%s:%d", clientKey(r), time.Now().Unix()/int64(config.Window.Seconds()))

			count, err := redisClient.Incr(ctx, key).Result()
			if err != nil {
				logger.Warn(ctx).Err(err).Msg("Rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				redisClient.Expire(ctx, key, config.Window)
			}

			if count > int64(config.RequestsPerWindow) {
				logger.Warn(ctx).Str("client", clientKey(r)).Int64("count", count).Msg("Rate limit exceeded")
				respondError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if session := r.Header.Get(SessionHeader); session != "" {
		return session
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
