package repository

import "time"

// LogOption applies a configuration option to the MemoryLog.
type LogOption func(*MemoryLog)

// WithLogClock injects the time source used for timestamp defaults and
// window cutoffs.
func WithLogClock(now func() time.Time) LogOption {
	return func(l *MemoryLog) {
		if now != nil {
			l.now = now
		}
	}
}

// CatalogOption applies a configuration option to the Catalog.
type CatalogOption func(*Catalog)

// WithMaxSize bounds the number of movies the catalog accepts.
func WithMaxSize(maxSize int) CatalogOption {
	return func(c *Catalog) {
		c.maxSize = maxSize
	}
}
