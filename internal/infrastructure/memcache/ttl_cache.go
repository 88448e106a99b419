package memcache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/jonboulle/clockwork"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// TTLCache is an in-process ports.Cache backed by a map. Expired entries
// behave as absent and are evicted lazily on access and by Sweep.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   clockwork.Clock
}

var _ ports.Cache = (*TTLCache)(nil)

func NewTTLCache(clock clockwork.Clock) *TTLCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TTLCache{entries: make(map[string]entry), clock: clock}
}

func (c *TTLCache) Backend() string      { return "memory" }
func (c *TTLCache) SupportsPrefix() bool { return true }

func (c *TTLCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	now := c.clock.Now()
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if e.expired(now) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur.expired(now) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores a copy of value. ttl <= 0 means no expiration.
func (c *TTLCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = c.clock.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *TTLCache) Delete(_ context.Context, key string) (bool, error) {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	delete(c.entries, key)
	return !e.expired(now), nil
}

func (c *TTLCache) DeletePrefix(_ context.Context, prefix string) (int, error) {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if !e.expired(now) {
			n++
		}
		delete(c.entries, k)
	}
	return n, nil
}

// Sweep evicts expired entries and returns how many were removed.
func (c *TTLCache) Sweep() int {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, expired or not.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// RunJanitor sweeps every interval until ctx is done.
func (c *TTLCache) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := c.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			c.Sweep()
		}
	}
}
