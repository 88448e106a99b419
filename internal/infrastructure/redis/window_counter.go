package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/go-redis/redis/v8"
)

// WindowCounter implements ports.WindowCounter with Redis so quotas are shared
// between instances.
type WindowCounter struct {
	r redis.Cmdable
}

var _ ports.WindowCounter = (*WindowCounter)(nil)

func NewWindowCounter(r redis.Cmdable) *WindowCounter {
	return &WindowCounter{r: r}
}

// IncrementWindow increments a per-client counter for a fixed window.
func (w *WindowCounter) IncrementWindow(ctx context.Context, clientID string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	windowStart := time.Now().Truncate(window)
	key := fmt.Sprintf("%s:%s:%d", keyPrefix, clientID, windowStart.Unix())
	pipe := w.r.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, windowStart, err
	}
	return int(incr.Val()), windowStart, nil
}
