package upstream

// Status classifies the outcome of an upstream call.
type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusNotFound:
		return "not_found"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result carries a value together with how it was obtained. Value is always
// renderable: failed and empty results hold the zero/empty default.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

func OK[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusOK}
}

func Empty[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusEmpty}
}

func NotFound[T any]() Result[T] {
	return Result[T]{Status: StatusNotFound}
}

// Failed records err while still returning the fallback value v.
func Failed[T any](v T, err error) Result[T] {
	return Result[T]{Value: v, Status: StatusFailed, Err: err}
}

// Cacheable reports whether the value should be written to the cache.
// Not-found results are never stored.
func (r Result[T]) Cacheable() bool {
	return r.Status != StatusNotFound
}
