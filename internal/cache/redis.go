package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	defaultEntryTTL = 15 * time.Minute
	keyPrefix       = "cart:"
)

// RedisCache keeps cart snapshots in redis for the view path. Entries carry
// a jittered TTL; the cart store stays the source of truth and every write
// path invalidates rather than updates.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache builds a cache whose entries live for roughly ttl. A
// non-positive ttl falls back to the default.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultEntryTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := c.client.Get(ctx, keyPrefix+sessionID).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return &cart, nil
}

func (c *RedisCache) Set(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+sessionID, data, c.entryTTL()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// entryTTL adds up to 25% jitter so entries written during a kiosk rush do
// not all expire and refill in the same instant.
func (c *RedisCache) entryTTL() time.Duration {
	return c.ttl + time.Duration(rand.Int63n(int64(c.ttl)/4))
}
