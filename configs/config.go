package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/joho/godotenv"
)

// Cache backends selectable with CACHE_BACKEND.
const (
	CacheBackendMemory    = "memory"
	CacheBackendRistretto = "ristretto"
	CacheBackendRedis     = "redis"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Upstream  UpstreamConfig
	Seasons   SeasonsConfig
	Warmup    WarmupConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
	CORSOrigins  []string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
	// KeyPrefix namespaces cache keys when the instance is shared
	KeyPrefix      string
	ConnectRetries int
}

type CacheConfig struct {
	Backend        string
	MaxCost        int64 // ristretto byte budget
	CoalesceMisses bool
	SweepInterval  time.Duration
}

type UpstreamConfig struct {
	BaseURL     string
	MinInterval time.Duration
	Timeout     time.Duration
	Retries     int
}

type SeasonsConfig struct {
	Current   string
	FirstYear int
	// LastYear is the start year of Current
	LastYear int
}

type WarmupConfig struct {
	PlayerIDs  []int
	MaxSeasons int
	OnStart    bool
	Interval   time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	BurstMultiplier   float64
	Window            time.Duration
	KeyPrefix         string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "5000"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:  getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:   getEnv("TLS_KEY_FILE", ""),
			CORSOrigins:  getListEnv("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Redis: RedisConfig{
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getIntEnv("REDIS_DB", 0),
			PoolSize:       getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns:   getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:    getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:    getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:   getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:    getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:    getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
			KeyPrefix:      getEnv("REDIS_KEY_PREFIX", ""),
			ConnectRetries: getIntEnv("REDIS_CONNECT_RETRIES", 5),
		},
		Cache: CacheConfig{
			Backend:        strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendMemory)),
			MaxCost:        int64(getIntEnv("CACHE_MAX_COST", 64<<20)),
			CoalesceMisses: getBoolEnv("CACHE_COALESCE_MISSES", true),
			SweepInterval:  getDurationEnv("CACHE_SWEEP_INTERVAL", 5*time.Minute),
		},
		Upstream: UpstreamConfig{
			BaseURL:     getEnv("UPSTREAM_BASE_URL", "https://stats.nba.com/stats"),
			MinInterval: getDurationEnv("UPSTREAM_MIN_INTERVAL", 600*time.Millisecond),
			Timeout:     getDurationEnv("UPSTREAM_TIMEOUT", 30*time.Second),
			Retries:     getIntEnv("UPSTREAM_RETRIES", 0),
		},
		Seasons: SeasonsConfig{
			Current:   getEnv("CURRENT_SEASON", "2024-25"),
			FirstYear: getIntEnv("FIRST_SEASON_YEAR", 1996),
		},
		Warmup: WarmupConfig{
			PlayerIDs:  getIntListEnv("WARMUP_PLAYER_IDS", []int{201939, 2544, 201935}),
			MaxSeasons: getIntEnv("WARMUP_SEASONS", 2),
			OnStart:    getBoolEnv("WARMUP_ON_START", false),
			Interval:   getDurationEnv("WARMUP_INTERVAL", 0),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getBoolEnv("RATE_LIMIT_ENABLED", true),
			RequestsPerMinute: getIntEnv("RATE_LIMIT_RPM", 120),
			BurstMultiplier:   getFloatEnv("RATE_LIMIT_BURST", 1.5),
			Window:            getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			KeyPrefix:         getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit:client"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	last, err := player.ParseSeason(c.Seasons.Current)
	if err != nil {
		return fmt.Errorf("CURRENT_SEASON: %w", err)
	}
	c.Seasons.LastYear = last
	if c.Seasons.FirstYear > last {
		return fmt.Errorf("FIRST_SEASON_YEAR %d is after CURRENT_SEASON %s", c.Seasons.FirstYear, c.Seasons.Current)
	}
	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRistretto, CacheBackendRedis:
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of memory, ristretto, redis; got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheBackendRistretto && c.Cache.MaxCost <= 0 {
		return fmt.Errorf("CACHE_MAX_COST must be positive")
	}
	return nil
}

// RecentSeasons returns the n most recent season labels, newest first.
func (c *Config) RecentSeasons(n int) []string {
	first := c.Seasons.LastYear - n + 1
	if first < c.Seasons.FirstYear {
		first = c.Seasons.FirstYear
	}
	return player.SeasonLabels(first, c.Seasons.LastYear)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getIntListEnv parses a comma separated list; any bad element falls back to
// the default list.
func getIntListEnv(key string, defaultValue []int) []int {
	parts := getListEnv(key, nil)
	if parts == nil {
		return defaultValue
	}
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return defaultValue
		}
		out = append(out, n)
	}
	return out
}
