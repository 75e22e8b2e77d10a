package analytics

import "time"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithClock injects the time source used for windowed aggregations.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}
