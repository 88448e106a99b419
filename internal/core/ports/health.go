package ports

import "context"

// HealthChecker probes one dependency (cache backend, redis) for /health and
// /health/ready. Check returns nil when the dependency is usable.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
