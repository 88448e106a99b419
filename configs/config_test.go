package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "5000", cfg.Server.Port)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	require.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	require.True(t, cfg.Cache.CoalesceMisses)
	require.Equal(t, 600*time.Millisecond, cfg.Upstream.MinInterval)
	require.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
	require.Equal(t, "2024-25", cfg.Seasons.Current)
	require.Equal(t, 2024, cfg.Seasons.LastYear)
	require.Equal(t, 1996, cfg.Seasons.FirstYear)
	require.Equal(t, []int{201939, 2544, 201935}, cfg.Warmup.PlayerIDs)
	require.Equal(t, 2, cfg.Warmup.MaxSeasons)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("UPSTREAM_MIN_INTERVAL", "1s")
	t.Setenv("CACHE_COALESCE_MISSES", "false")
	t.Setenv("WARMUP_PLAYER_IDS", "1, 2 ,3")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CURRENT_SEASON", "2023-24")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	require.Equal(t, time.Second, cfg.Upstream.MinInterval)
	require.False(t, cfg.Cache.CoalesceMisses)
	require.Equal(t, []int{1, 2, 3}, cfg.Warmup.PlayerIDs)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	require.Equal(t, []string{"2023-24", "2022-23"}, cfg.RecentSeasons(2))
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("season", func(t *testing.T) {
		t.Setenv("CURRENT_SEASON", "2024-26")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("backend", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "memcached")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("first year after current", func(t *testing.T) {
		t.Setenv("FIRST_SEASON_YEAR", "2030")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestGetIntListEnv_BadElementFallsBack(t *testing.T) {
	t.Setenv("IDS", "1,x")
	require.Equal(t, []int{9}, getIntListEnv("IDS", []int{9}))
}

func TestRecentSeasons_ClampedToFirstYear(t *testing.T) {
	cfg := &Config{Seasons: SeasonsConfig{FirstYear: 2023, LastYear: 2024}}
	require.Equal(t, []string{"2024-25", "2023-24"}, cfg.RecentSeasons(5))
}
