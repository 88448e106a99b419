package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/shotchart-service/internal/core/ports/portsmock"
	"github.com/avatarctic/shotchart-service/internal/infrastructure/httpserver/middleware"
)

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRateLimitMiddleware_UsesClientIP(t *testing.T) {
	e := echo.New()
	var seen string
	limiter := &portsmock.ClientRateLimiterMock{AllowFn: func(ctx context.Context, clientID string) (bool, int, int, time.Time, error) {
		seen = clientID
		return true, 9, 10, time.Now(), nil
	}}
	h := middleware.NewRateLimitMiddleware(limiter, logrus.New()).Handler()(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/seasons", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	require.Equal(t, "203.0.113.7", seen)
	require.Equal(t, "9", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitMiddleware_Returns429WhenDenied(t *testing.T) {
	e := echo.New()
	limiter := &portsmock.ClientRateLimiterMock{AllowFn: func(ctx context.Context, clientID string) (bool, int, int, time.Time, error) {
		return false, 0, 10, time.Now(), nil
	}}
	h := middleware.NewRateLimitMiddleware(limiter, nil).Handler()(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/players/search?q=jam", nil)
	err := h(e.NewContext(req, httptest.NewRecorder()))
	require.Error(t, err)
	htErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusTooManyRequests, htErr.Code)
}

func TestRateLimitMiddleware_SkipsProbesAndNilLimiter(t *testing.T) {
	e := echo.New()
	called := false
	limiter := &portsmock.ClientRateLimiterMock{AllowFn: func(ctx context.Context, clientID string) (bool, int, int, time.Time, error) {
		called = true
		return false, 0, 0, time.Now(), nil
	}}
	h := middleware.NewRateLimitMiddleware(limiter, nil).Handler()(okHandler)
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), httptest.NewRecorder())))
	require.False(t, called)

	h = middleware.NewRateLimitMiddleware(nil, nil).Handler()(okHandler)
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/seasons", nil), httptest.NewRecorder())))
}

func TestMetricsMiddleware_RecordsFinalStatus(t *testing.T) {
	e := echo.New()
	total := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "t_requests_total"}, []string{"method", "endpoint", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "t_duration_seconds"}, []string{"method", "endpoint"})
	h := middleware.NewMetricsMiddleware(total, duration).CollectHTTPMetrics()(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "nope")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/players/x", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/players/:id")
	require.Error(t, h(c))
	require.Equal(t, 1.0, testutil.ToFloat64(total.WithLabelValues(http.MethodGet, "/api/players/:id", "400")))
}
