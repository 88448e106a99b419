package ports

import "time"

// Metrics receives domain-level measurements. A nil Metrics is never passed
// to services; use NopMetrics instead.
type Metrics interface {
	CacheLookup(tag string, hit bool)
	CacheError(op string)
	UpstreamCall(kind, status string, elapsed time.Duration)
	LimiterWait(waited time.Duration)
}

// NopMetrics discards every measurement.
type NopMetrics struct{}

func (NopMetrics) CacheLookup(string, bool)                   {}
func (NopMetrics) CacheError(string)                          {}
func (NopMetrics) UpstreamCall(string, string, time.Duration) {}
func (NopMetrics) LimiterWait(time.Duration)                  {}
