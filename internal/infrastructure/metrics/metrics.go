package metrics

import (
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric of the service and implements
// ports.Metrics for the application layer.
type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	cacheLookups     *prometheus.CounterVec
	cacheErrors      *prometheus.CounterVec
	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	limiterWait      prometheus.Histogram
}

var _ ports.Metrics = (*Collector)(nil)

// New creates the collector and registers it with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "The total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "The HTTP request latencies in seconds",
			},
			[]string{"method", "endpoint"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shotchart_cache_lookups_total",
				Help: "Cache lookups by data type and result",
			},
			[]string{"tag", "result"},
		),
		cacheErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shotchart_cache_errors_total",
				Help: "Cache backend failures by operation",
			},
			[]string{"op"},
		),
		upstreamCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shotchart_upstream_calls_total",
				Help: "Stats provider calls by kind and outcome",
			},
			[]string{"kind", "status"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shotchart_upstream_call_duration_seconds",
				Help:    "Stats provider call latencies in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"kind"},
		),
		limiterWait: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shotchart_upstream_limiter_wait_seconds",
				Help:    "Time spent waiting for the upstream rate limiter",
				Buckets: []float64{0.05, 0.1, 0.2, 0.4, 0.6, 1.2, 3, 6},
			},
		),
	}
	reg.MustRegister(c.RequestsTotal, c.RequestDuration, c.cacheLookups, c.cacheErrors, c.upstreamCalls, c.upstreamDuration, c.limiterWait)
	return c
}

func (c *Collector) CacheLookup(tag string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	if tag == "" {
		tag = "other"
	}
	c.cacheLookups.WithLabelValues(tag, result).Inc()
}

func (c *Collector) CacheError(op string) {
	c.cacheErrors.WithLabelValues(op).Inc()
}

func (c *Collector) UpstreamCall(kind, status string, elapsed time.Duration) {
	c.upstreamCalls.WithLabelValues(kind, status).Inc()
	c.upstreamDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (c *Collector) LimiterWait(waited time.Duration) {
	c.limiterWait.Observe(waited.Seconds())
}
