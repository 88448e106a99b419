package redis

import (
	"context"
	"strings"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/go-redis/redis/v8"
)

const scanBatch = 200

// RedisCache implements ports.Cache using a Redis client.
type RedisCache struct {
	r redis.Cmdable
	// optional key prefix to namespace entries
	prefix string
}

var _ ports.Cache = (*RedisCache)(nil)

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache(r redis.Cmdable, prefix string) *RedisCache {
	return &RedisCache{r: r, prefix: prefix}
}

func (c *RedisCache) namespaced(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

func (c *RedisCache) Backend() string      { return "redis" }
func (c *RedisCache) SupportsPrefix() bool { return true }

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.r.Get(ctx, c.namespaced(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set stores value with ttl; ttl <= 0 keeps the key without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.r.Set(ctx, c.namespaced(key), value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) (bool, error) {
	n, err := c.r.Del(ctx, c.namespaced(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeletePrefix walks the keyspace with SCAN and deletes matches batch by batch.
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	match := escapeGlob(c.namespaced(prefix)) + "*"
	var cursor uint64
	removed := 0
	for {
		keys, next, err := c.r.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return removed, err
		}
		if len(keys) > 0 {
			n, err := c.r.Del(ctx, keys...).Result()
			if err != nil {
				return removed, err
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}

var globReplacer = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob quotes the MATCH metacharacters so prefix is matched literally.
func escapeGlob(s string) string {
	return globReplacer.Replace(s)
}
