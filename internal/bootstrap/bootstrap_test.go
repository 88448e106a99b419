package bootstrap

import (
	"context"
	"io"
	"testing"
	"time"

	config "github.com/avatarctic/shotchart-service/configs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testConfig(backend string) *config.Config {
	return &config.Config{
		Cache:    config.CacheConfig{Backend: backend, MaxCost: 1 << 20, CoalesceMisses: true, SweepInterval: time.Minute},
		Upstream: config.UpstreamConfig{BaseURL: "https://stats.test/stats", MinInterval: 600 * time.Millisecond, Timeout: time.Second},
		Seasons:  config.SeasonsConfig{Current: "2024-25", FirstYear: 2020, LastYear: 2024},
		Warmup:   config.WarmupConfig{MaxSeasons: 2},
		RateLimit: config.RateLimitConfig{
			Enabled: true, RequestsPerMinute: 10, BurstMultiplier: 1, Window: time.Minute, KeyPrefix: "rl",
		},
	}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestBuild_MemoryBackend(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := Build(context.Background(), testConfig(config.CacheBackendMemory), quietLogger(), reg, reg)
	require.NoError(t, err)
	defer c.Close()

	require.NotNil(t, c.Players)
	require.NotNil(t, c.Warmup)
	require.NotNil(t, c.ClientLimiter)
	require.NotNil(t, c.ttlCache)
	require.Len(t, c.HealthCheckers, 1)
	require.Equal(t, "cache", c.HealthCheckers[0].Name())
	require.NoError(t, c.HealthCheckers[0].Check(context.Background()))
	require.Equal(t, "memory", c.Cache.Stats(context.Background()).Backend)

	seasons, err := c.Players.GetSeasons(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"2024-25", "2023-24", "2022-23", "2021-22", "2020-21"}, seasons)
}

func TestBuild_RistrettoBackendWithoutClientLimiter(t *testing.T) {
	cfg := testConfig(config.CacheBackendRistretto)
	cfg.RateLimit.Enabled = false
	reg := prometheus.NewRegistry()
	c, err := Build(context.Background(), cfg, quietLogger(), reg, reg)
	require.NoError(t, err)
	defer c.Close()

	require.Nil(t, c.ClientLimiter)
	require.Nil(t, c.ttlCache)
	stats := c.Cache.Stats(context.Background())
	require.Equal(t, "ristretto", stats.Backend)
	require.False(t, stats.PrefixInvalidate)
}

func TestNewLogger(t *testing.T) {
	l := NewLogger(config.LogConfig{Level: "debug", Format: "text"})
	require.Equal(t, logrus.DebugLevel, l.GetLevel())
	_, isText := l.Formatter.(*logrus.TextFormatter)
	require.True(t, isText)

	l = NewLogger(config.LogConfig{Level: "nonsense", Format: "json"})
	require.Equal(t, logrus.InfoLevel, l.GetLevel())
	_, isJSON := l.Formatter.(*logrus.JSONFormatter)
	require.True(t, isJSON)
}
