package memcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/dgraph-io/ristretto/v2"
)

var errSetDropped = errors.New("ristretto: set dropped")

// RistrettoCache is a bounded in-process ports.Cache. Cost is the value size
// in bytes, so MaxCost is a memory budget. Keys cannot be enumerated, so
// prefix invalidation is not available.
type RistrettoCache struct {
	cache *ristretto.Cache[string, []byte]
}

var _ ports.Cache = (*RistrettoCache)(nil)

func NewRistrettoCache(maxCost int64) (*RistrettoCache, error) {
	if maxCost <= 0 {
		return nil, fmt.Errorf("ristretto: max cost must be positive, got %d", maxCost)
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters:        100_000,
		MaxCost:            maxCost,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ristretto: %w", err)
	}
	return &RistrettoCache{cache: c}, nil
}

func (c *RistrettoCache) Backend() string      { return "ristretto" }
func (c *RistrettoCache) SupportsPrefix() bool { return false }

func (c *RistrettoCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.cache.Get(key)
	return v, ok, nil
}

// Set waits for the write buffers to drain so a following Get observes it.
func (c *RistrettoCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	v := append([]byte(nil), value...)
	if !c.cache.SetWithTTL(key, v, int64(len(v)), ttl) {
		return errSetDropped
	}
	c.cache.Wait()
	return nil
}

func (c *RistrettoCache) Delete(_ context.Context, key string) (bool, error) {
	_, ok := c.cache.Get(key)
	c.cache.Del(key)
	return ok, nil
}

func (c *RistrettoCache) DeletePrefix(context.Context, string) (int, error) {
	return 0, ports.ErrPrefixUnsupported
}

func (c *RistrettoCache) Close() {
	c.cache.Close()
}
