package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health check handler
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	deps, healthy := s.runHealthChecks(ctx)
	overall := "healthy"
	if !healthy {
		overall = "degraded"
	}
	health := map[string]interface{}{
		"status":         overall,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"version":        "1.0.0",
		"service":        serviceName,
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
		"dependencies":   deps,
	}
	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, health)
}

func (s *Server) livenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	deps, healthy := s.runHealthChecks(ctx)
	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "not_ready",
			"timestamp": time.Now().Unix(),
			"checks":    deps,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now().Unix(),
		"checks":    deps,
	})
}

func (s *Server) runHealthChecks(ctx context.Context) (map[string]string, bool) {
	deps := make(map[string]string)
	healthy := true
	for _, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		if err := hc.Check(ctx); err != nil {
			deps[hc.Name()] = "unhealthy"
			healthy = false
			if s.logger != nil {
				s.logger.WithError(err).WithField("dependency", hc.Name()).Warn("health check failed")
			}
		} else {
			deps[hc.Name()] = "healthy"
		}
	}
	return deps, healthy
}
