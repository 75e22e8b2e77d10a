package service

import (
	"time"

	"github.com/reelworks/marquee/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalogName sets the catalog label.
func WithCatalogName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.catalogName = name
		}
	}
}

// WithCatalogMaxSize bounds the movie catalog.
func WithCatalogMaxSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.catalogMaxSize = size
		}
	}
}

// WithDedupeSize sets the size of the event-id idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithTrendingWindow sets the default trailing window for trending queries.
func WithTrendingWindow(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.trendingWindowDays = days
		}
	}
}

// WithGenreWeights sets the recommender's genre weights.
func WithGenreWeights(weights map[string]float64, defaultWeight float64) Option {
	return func(s *Service) {
		s.genreWeights = weights
		if defaultWeight > 0 {
			s.defaultGenreWeight = defaultWeight
		}
	}
}

// WithClock injects the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}
