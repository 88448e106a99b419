package services

import (
	"context"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// ClientRateLimitService implements ports.ClientRateLimiter with a fixed
// window per client and a burst allowance on top of the base limit.
type ClientRateLimitService struct {
	counter         ports.WindowCounter
	limit           int
	burstMultiplier float64
	window          time.Duration
	keyPrefix       string
	logger          *logrus.Logger
}

// ClientRateLimitConfig groups configuration parameters for the limiter.
type ClientRateLimitConfig struct {
	RequestsPerMinute int
	BurstMultiplier   float64
	Window            time.Duration
	KeyPrefix         string
}

func NewClientRateLimitService(counter ports.WindowCounter, cfg *ClientRateLimitConfig, logger *logrus.Logger) *ClientRateLimitService {
	// Apply defaults
	limit := 120
	bm := 1.0
	w := time.Minute
	kp := "ratelimit:client"
	if cfg != nil {
		if cfg.RequestsPerMinute > 0 {
			limit = cfg.RequestsPerMinute
		}
		if cfg.BurstMultiplier > 0 {
			bm = cfg.BurstMultiplier
		}
		if cfg.Window > 0 {
			w = cfg.Window
		}
		if cfg.KeyPrefix != "" {
			kp = cfg.KeyPrefix
		}
	}
	return &ClientRateLimitService{counter: counter, limit: limit, burstMultiplier: bm, window: w, keyPrefix: kp, logger: logger}
}

func (s *ClientRateLimitService) Allow(ctx context.Context, clientID string) (bool, int, int, time.Time, error) {
	ttl := s.window * 2 // retain overlap window
	count, windowStart, err := s.counter.IncrementWindow(ctx, clientID, s.window, s.keyPrefix, ttl)
	reset := windowStart.Add(s.window)
	burst := int(float64(s.limit) * s.burstMultiplier)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"client": clientID}).WithError(err).Error("client rate limiter: failed to increment window")
		}
		// fail open
		return true, burst, s.limit, reset, err
	}
	if count > burst {
		return false, 0, s.limit, reset, nil
	}
	return true, burst - count, s.limit, reset, nil
}
