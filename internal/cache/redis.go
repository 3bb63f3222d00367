package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis is a Repository backed by a Redis instance, for sharing cached
// reports across server replicas.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed cache for the given address.
func NewRedis(addr string) *Redis {
	return &Redis{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Get returns the cached value for key, if present. Transport errors are
// treated as misses so the caller recomputes rather than failing.
func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// Set stores a value under key with no expiry.
func (r *Redis) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}
