package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound       = errors.New("movie not found")
	ErrInvalidWindow  = errors.New("invalid day window")
	ErrCatalogFull    = errors.New("catalog is full")
	ErrInvalidCatalog = errors.New("invalid catalog")
)
