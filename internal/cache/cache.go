package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"imovia/internal/config"
	"imovia/internal/events"
	"imovia/internal/utils/logger"
)

// ListingTTL bounds staleness when an invalidation event is lost.
const ListingTTL = 5 * time.Minute

const listingPrefix = "properties"

// Cache is a Redis read-through cache for the public listing views.
// Property mutations invalidate it through the event bus; it is never
// a correctness dependency, only a read accelerator.
type Cache struct {
	client *redis.Client
	log    *logger.Logger
}

// New connects to Redis. When Redis is unreachable the cache degrades
// to pass-through rather than failing the listing path.
func New(cfg config.RedisConfig) *Cache {
	log := logger.New("CACHE")

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, listing cache disabled: %v", err)
		return &Cache{client: nil, log: log}
	}

	log.Success("Listing cache connected to %s", cfg.Addr)
	return &Cache{client: client, log: log}
}

// Enabled reports whether Redis is reachable.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get loads a cached value into dest. The first return is false on miss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(data), dest)
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// ListingKey canonicalizes a filter parameter set into a stable cache
// key, so equivalent filters share an entry regardless of param order.
// Values are percent-escaped before hashing; a filter value containing
// delimiter characters can never alias another filter set's key.
func ListingKey(params map[string]string) string {
	values := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		values.Set(k, v)
	}

	// Encode sorts by key and escapes both keys and values.
	hash := md5.Sum([]byte(values.Encode()))
	return listingPrefix + ":" + hex.EncodeToString(hash[:])
}

// InvalidateListings drops every cached listing view.
func (c *Cache) InvalidateListings(ctx context.Context) {
	if !c.Enabled() {
		return
	}

	iter := c.client.Scan(ctx, 0, listingPrefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("Failed to drop cache key %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("Cache invalidation scan failed: %v", err)
	}
}

// SubscribeInvalidation wires the cache to property mutation events.
func (c *Cache) SubscribeInvalidation() {
	invalidate := func(interface{}) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.InvalidateListings(ctx)
	}

	events.On(events.PropertyCreated, invalidate)
	events.On(events.PropertyUpdated, invalidate)
	events.On(events.PropertyDeleted, invalidate)
}
