package health

import (
	"context"

	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/go-redis/redis/v8"
)

// redisHealthChecker wraps the redis client for health checks.
type redisHealthChecker struct{ client redis.Cmdable }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// cacheHealthChecker round-trips a probe key through the configured backend.
type cacheHealthChecker struct{ admin ports.CacheAdmin }

func (c *cacheHealthChecker) Name() string                    { return "cache" }
func (c *cacheHealthChecker) Check(ctx context.Context) error { return c.admin.HealthCheck(ctx) }

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client redis.Cmdable) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}

// NewCacheHealthChecker creates a health checker for the cache store.
func NewCacheHealthChecker(admin ports.CacheAdmin) ports.HealthChecker {
	return &cacheHealthChecker{admin: admin}
}
