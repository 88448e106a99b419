// Package bootstrap wires configuration into the shared components used by
// the server and the warmup command.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	config "github.com/avatarctic/shotchart-service/configs"
	"github.com/avatarctic/shotchart-service/internal/application/services"
	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/avatarctic/shotchart-service/internal/infrastructure/health"
	"github.com/avatarctic/shotchart-service/internal/infrastructure/memcache"
	"github.com/avatarctic/shotchart-service/internal/infrastructure/metrics"
	"github.com/avatarctic/shotchart-service/internal/infrastructure/nbastats"
	"github.com/avatarctic/shotchart-service/internal/infrastructure/redis"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Components are the long-lived objects built from one Config.
type Components struct {
	Config         *config.Config
	Logger         *logrus.Logger
	Metrics        *metrics.Collector
	Gatherer       prometheus.Gatherer
	Cache          *services.CacheService
	Players        *services.PlayerService
	Warmup         *services.WarmupService
	ClientLimiter  ports.ClientRateLimiter // nil when RATE_LIMIT_ENABLED=false
	HealthCheckers []ports.HealthChecker

	ttlCache *memcache.TTLCache
	closers  []func()
}

// NewLogger configures logrus from LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if strings.EqualFold(cfg.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}
	return logger
}

// Build constructs every component. reg receives the service metrics; pass
// prometheus.DefaultRegisterer in binaries and a fresh registry in tests.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*Components, error) {
	c := &Components{Config: cfg, Logger: logger, Gatherer: gatherer}
	c.Metrics = metrics.New(reg)
	clock := clockwork.NewRealClock()

	store, counter, err := c.buildStore(ctx, clock)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Cache = services.NewCacheService(store, &services.CacheServiceConfig{
		Metrics:      c.Metrics,
		KnownSeasons: player.SeasonLabels(cfg.Seasons.FirstYear, cfg.Seasons.LastYear),
	}, logger)
	c.HealthCheckers = append(c.HealthCheckers, health.NewCacheHealthChecker(c.Cache))

	provider := nbastats.NewClient(nbastats.Config{
		BaseURL:       cfg.Upstream.BaseURL,
		Timeout:       cfg.Upstream.Timeout,
		Retries:       cfg.Upstream.Retries,
		CatalogSeason: cfg.Seasons.Current,
	}, logger)
	limiter := services.NewRateLimiterService(&services.RateLimiterConfig{
		MinInterval: cfg.Upstream.MinInterval,
		Clock:       clock,
		Metrics:     c.Metrics,
	}, logger)
	upstreamClient := services.NewUpstreamClient(provider, limiter, &services.UpstreamClientConfig{
		Timeout: cfg.Upstream.Timeout,
		Metrics: c.Metrics,
	}, logger)

	c.Players = services.NewPlayerService(c.Cache, upstreamClient, services.PlayerServiceConfig{
		Seasons:        services.SeasonRange{FirstYear: cfg.Seasons.FirstYear, LastYear: cfg.Seasons.LastYear},
		CoalesceMisses: cfg.Cache.CoalesceMisses,
	}, logger)
	c.Warmup = services.NewWarmupService(c.Players, &services.WarmupConfig{
		MaxSeasons: cfg.Warmup.MaxSeasons,
		Clock:      clock,
	}, logger)

	if cfg.RateLimit.Enabled {
		c.ClientLimiter = services.NewClientRateLimitService(counter, &services.ClientRateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			BurstMultiplier:   cfg.RateLimit.BurstMultiplier,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         cfg.RateLimit.KeyPrefix,
		}, logger)
	}

	logger.WithFields(logrus.Fields{
		"cache_backend":     store.Backend(),
		"coalesce_misses":   cfg.Cache.CoalesceMisses,
		"upstream_interval": limiter.Interval().String(),
		"current_season":    cfg.Seasons.Current,
	}).Info("components initialized")
	return c, nil
}

// buildStore selects the cache backend and the matching window counter for
// inbound rate limiting.
func (c *Components) buildStore(ctx context.Context, clock clockwork.Clock) (ports.Cache, ports.WindowCounter, error) {
	cfg := c.Config
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		client, err := redis.NewRedisClient(ctx, &cfg.Redis, c.Logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		c.closers = append(c.closers, func() { _ = client.Close() })
		c.HealthCheckers = append(c.HealthCheckers, health.NewRedisHealthChecker(client))
		return redis.NewRedisCache(client, cfg.Redis.KeyPrefix), redis.NewWindowCounter(client), nil
	case config.CacheBackendRistretto:
		rc, err := memcache.NewRistrettoCache(cfg.Cache.MaxCost)
		if err != nil {
			return nil, nil, fmt.Errorf("create ristretto cache: %w", err)
		}
		c.closers = append(c.closers, rc.Close)
		return rc, memcache.NewWindowCounter(clock), nil
	default:
		c.ttlCache = memcache.NewTTLCache(clock)
		return c.ttlCache, memcache.NewWindowCounter(clock), nil
	}
}

// RunBackground starts housekeeping goroutines; they stop with ctx.
func (c *Components) RunBackground(ctx context.Context) {
	if c.ttlCache != nil && c.Config.Cache.SweepInterval > 0 {
		go c.ttlCache.RunJanitor(ctx, c.Config.Cache.SweepInterval)
	}
}

// Close releases backend connections.
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
