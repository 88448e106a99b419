package services

import (
	"context"
	"sync"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// DefaultUpstreamInterval is the minimum spacing between provider requests.
const DefaultUpstreamInterval = 600 * time.Millisecond

// RateLimiterService implements ports.UpstreamLimiter as a process-wide
// minimum-spacing limiter. The check, sleep and stamp all happen under one
// lock, so concurrent callers are serialized and never observe a stale stamp.
type RateLimiterService struct {
	mu       sync.Mutex
	last     time.Time
	interval time.Duration
	clock    clockwork.Clock
	metrics  ports.Metrics
	logger   *logrus.Logger
}

// RateLimiterConfig groups configuration parameters for the limiter.
type RateLimiterConfig struct {
	// MinInterval <= 0 disables spacing.
	MinInterval time.Duration
	Clock       clockwork.Clock
	Metrics     ports.Metrics
}

func NewRateLimiterService(cfg *RateLimiterConfig, logger *logrus.Logger) *RateLimiterService {
	// Apply defaults
	interval := DefaultUpstreamInterval
	var clock clockwork.Clock = clockwork.NewRealClock()
	var metrics ports.Metrics = ports.NopMetrics{}
	if cfg != nil {
		interval = cfg.MinInterval
		if cfg.Clock != nil {
			clock = cfg.Clock
		}
		if cfg.Metrics != nil {
			metrics = cfg.Metrics
		}
	}
	return &RateLimiterService{interval: interval, clock: clock, metrics: metrics, logger: logger}
}

// Interval returns the configured spacing.
func (s *RateLimiterService) Interval() time.Duration { return s.interval }

func (s *RateLimiterService) Wait(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.interval > 0 && !s.last.IsZero() {
		if wait := s.interval - s.clock.Since(s.last); wait > 0 {
			if s.logger != nil {
				s.logger.WithField("wait", wait.String()).Debug("upstream limiter: spacing request")
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-s.clock.After(wait):
			}
			s.metrics.LimiterWait(wait)
		}
	}
	s.last = s.clock.Now()
	return nil
}
