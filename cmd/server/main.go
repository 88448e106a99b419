package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/avatarctic/shotchart-service/configs"
	"github.com/avatarctic/shotchart-service/internal/bootstrap"
	"github.com/avatarctic/shotchart-service/internal/infrastructure/httpserver"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := bootstrap.NewLogger(cfg.Log)
	logger.Info("Starting NBA shot chart service...")

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	app, err := bootstrap.Build(rootCtx, cfg, logger, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	if err != nil {
		logger.Fatal("Failed to initialize components:", err)
	}
	defer app.Close()

	app.RunBackground(rootCtx)

	warmSeasons := cfg.RecentSeasons(cfg.Warmup.MaxSeasons)
	if cfg.Warmup.OnStart || cfg.Warmup.Interval > 0 {
		go app.Warmup.Run(rootCtx, cfg.Warmup.Interval, cfg.Warmup.PlayerIDs, warmSeasons)
	}

	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.CORSOrigins,
		CurrentSeason:  cfg.Seasons.Current,
		WarmSeasons:    warmSeasons,
		WarmPlayerIDs:  cfg.Warmup.PlayerIDs,
	}

	deps := httpserver.ServerDeps{
		PlayerService:  app.Players,
		CacheAdmin:     app.Cache,
		Warmer:         app.Warmup,
		RateLimiter:    app.ClientLimiter,
		HealthCheckers: app.HealthCheckers,
		Metrics:        app.Metrics,
		Gatherer:       app.Gatherer,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
