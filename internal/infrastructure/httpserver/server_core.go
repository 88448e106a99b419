package httpserver

import (
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/ports"
	customMiddleware "github.com/avatarctic/shotchart-service/internal/infrastructure/httpserver/middleware"
	"github.com/avatarctic/shotchart-service/internal/infrastructure/metrics"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const serviceName = "nba-shotchart-backend"

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	// CurrentSeason is used when a request omits ?season.
	CurrentSeason string
	// WarmSeasons are used by POST /api/cache/warm when the body names none.
	WarmSeasons   []string
	WarmPlayerIDs []int
}

type ServerDeps struct {
	PlayerService  ports.PlayerService
	CacheAdmin     ports.CacheAdmin
	Warmer         ports.Warmer
	RateLimiter    ports.ClientRateLimiter // nil disables inbound limiting
	HealthCheckers []ports.HealthChecker
	Metrics        *metrics.Collector
	Gatherer       prometheus.Gatherer
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	players        ports.PlayerService
	cacheAdmin     ports.CacheAdmin
	warmer         ports.Warmer
	gatherer       prometheus.Gatherer
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
	startedAt      time.Time
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()

	collector, gatherer := deps.Metrics, deps.Gatherer
	if collector == nil {
		reg := prometheus.NewRegistry()
		collector = metrics.New(reg)
		if gatherer == nil {
			gatherer = reg
		}
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		players:        deps.PlayerService,
		cacheAdmin:     deps.CacheAdmin,
		warmer:         deps.Warmer,
		gatherer:       gatherer,
		healthCheckers: deps.HealthCheckers,
		startedAt:      time.Now(),
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.RateLimiter,
			logger,
			collector.RequestsTotal,
			collector.RequestDuration,
		),
	}
	e.HTTPErrorHandler = server.handleError

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
