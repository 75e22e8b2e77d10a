// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CatalogName labels the movie catalog.
	CatalogName string `koanf:"catalog_name"`

	// CatalogMaxSize bounds the number of movies the catalog accepts.
	CatalogMaxSize int `koanf:"catalog_max_size"`

	// DedupeSize sets the size of the event-id idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxTopLimit caps ?limit on the analytics list endpoints.
	MaxTopLimit int `koanf:"max_top_limit"`

	// TrendingWindowDays is the default trailing window for trending queries.
	TrendingWindowDays int `koanf:"trending_window_days"`

	// GenreWeights biases the rating recommender per genre.
	GenreWeights map[string]float64 `koanf:"genre_weights"`

	// DefaultGenreWeight is used for genres without an explicit weight.
	DefaultGenreWeight float64 `koanf:"default_genre_weight"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		CatalogName:        "main",
		CatalogMaxSize:     5000,
		DedupeSize:         50_000,
		MaxTopLimit:        100,
		TrendingWindowDays: 7,
		GenreWeights: map[string]float64{
			"drama": 1.0,
		},
		DefaultGenreWeight: 1.0,
	}
}
