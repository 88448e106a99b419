package memcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/jonboulle/clockwork"
)

type window struct {
	count     int
	expiresAt time.Time
}

// WindowCounter is a process-local ports.WindowCounter.
type WindowCounter struct {
	mu      sync.Mutex
	windows map[string]window
	clock   clockwork.Clock
}

var _ ports.WindowCounter = (*WindowCounter)(nil)

func NewWindowCounter(clock clockwork.Clock) *WindowCounter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &WindowCounter{windows: make(map[string]window), clock: clock}
}

func (w *WindowCounter) IncrementWindow(_ context.Context, clientID string, size time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	now := w.clock.Now()
	windowStart := now.Truncate(size)
	key := fmt.Sprintf("%s:%s:%d", keyPrefix, clientID, windowStart.Unix())

	w.mu.Lock()
	defer w.mu.Unlock()
	for k, win := range w.windows {
		if !now.Before(win.expiresAt) {
			delete(w.windows, k)
		}
	}
	win := w.windows[key]
	win.count++
	win.expiresAt = now.Add(ttl)
	w.windows[key] = win
	return win.count, windowStart, nil
}
