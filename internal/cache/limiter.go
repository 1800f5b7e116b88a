package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RateLimit struct {
	Window  time.Duration
	MaxHits int
}

// SessionRateLimiter is a Redis sliding-window limiter keyed by an
// arbitrary identifier. Favorites mutations use it per session id so a
// single anonymous session cannot hammer the write path. With Redis
// down it fails open.
type SessionRateLimiter struct {
	cache *Cache
	name  string
	limit RateLimit
}

func NewSessionRateLimiter(cache *Cache, name string, limit RateLimit) *SessionRateLimiter {
	return &SessionRateLimiter{cache: cache, name: name, limit: limit}
}

func (l *SessionRateLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	if !l.cache.Enabled() {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:%s:%s", l.name, identifier)

	pipe := l.cache.client.Pipeline()
	now := time.Now().Unix()
	windowStart := now - int64(l.limit.Window.Seconds())

	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	// Member must be unique per hit: a timestamp member would collapse
	// hits landing in the same second and undercount the window.
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: uuid.New().String()})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.limit.Window*2)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis pipeline error: %w", err)
	}

	return card.Val() <= int64(l.limit.MaxHits), nil
}
