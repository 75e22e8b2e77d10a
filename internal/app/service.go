// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	repository "github.com/reelworks/marquee/internal/adapters/repository"
	"github.com/reelworks/marquee/internal/domain/analytics"
	"github.com/reelworks/marquee/internal/domain/dedupe"
	"github.com/reelworks/marquee/internal/domain/event"
	"github.com/reelworks/marquee/internal/domain/movie"
	"github.com/reelworks/marquee/internal/domain/recommend"
	"github.com/reelworks/marquee/internal/domain/types"
	"github.com/reelworks/marquee/pkg/logger"
	"github.com/reelworks/marquee/pkg/metrics"
)

// Service wires the watch log, catalog, analytics engine, recommender, and
// idempotency cache behind one API surface.
type Service struct {
	mu sync.RWMutex

	// Core components
	watchLog    *repository.MemoryLog
	catalog     *repository.Catalog
	deduper     dedupe.Deduper
	engine      *analytics.Engine
	recommender *recommend.RatingRecommender

	// Configuration
	catalogName        string
	catalogMaxSize     int
	dedupeSize         int
	trendingWindowDays int
	genreWeights       map[string]float64
	defaultGenreWeight float64
	clock              func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		catalogName:        "main",
		catalogMaxSize:     5000,
		dedupeSize:         50_000,
		trendingWindowDays: analytics.DefaultTrendingDays,
		genreWeights:       map[string]float64{},
		defaultGenreWeight: 1.0,
		clock:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	catalog, err := repository.NewCatalog(s.catalogName, repository.WithMaxSize(s.catalogMaxSize))
	if err != nil {
		return err
	}
	s.catalog = catalog
	s.watchLog = repository.NewMemoryLog(repository.WithLogClock(s.clock))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.engine = analytics.New(analytics.WithClock(s.clock))
	s.recommender = recommend.New(recommend.WithGenreWeights(s.genreWeights, s.defaultGenreWeight))

	s.started = true
	s.logger.Info(ctx, "catalog service started",
		logger.String("catalog", s.catalogName),
		logger.Int("catalogMaxSize", s.catalogMaxSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop shuts the service down. All state is in memory, so there is nothing
// to flush; the hook keeps the lifecycle symmetric.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "catalog service stopped")
}

// SeenAndRecord atomically checks if an event id was seen and records it if
// not. Returns true if the event was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordEventDuplicate()
	}
	metrics.UpdateDedupeSize(s.deduper.Size())
	return seen
}

// Unrecord removes an event id from the seen set, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
	metrics.UpdateDedupeSize(s.deduper.Size())
}

// AddEvent validates and appends a watch event.
func (s *Service) AddEvent(ctx context.Context, p event.Params) (event.WatchEvent, error) {
	ev, err := s.watchLog.Append(ctx, p)
	if err != nil {
		metrics.RecordEventRejected()
		s.logger.Debug(ctx, "rejected watch event",
			logger.String("userID", p.UserID),
			logger.String("movieID", p.MovieID),
			logger.Error(err),
		)
		return event.WatchEvent{}, err
	}
	metrics.RecordEventStored()
	return ev, nil
}

// Events returns a copy of the stored watch events.
func (s *Service) Events(ctx context.Context) []event.WatchEvent {
	return s.watchLog.Events(ctx)
}

// AddMovie stores a movie in the catalog.
func (s *Service) AddMovie(ctx context.Context, m movie.Movie) error {
	return s.catalog.Add(ctx, m)
}

// RemoveMovie deletes a movie; unknown ids are a no-op.
func (s *Service) RemoveMovie(ctx context.Context, movieID string) {
	s.catalog.Remove(ctx, movieID)
}

// GetMovie returns one movie or repository.ErrNotFound.
func (s *Service) GetMovie(ctx context.Context, movieID string) (movie.Movie, error) {
	return s.catalog.Get(ctx, movieID)
}

// Movies lists the catalog, optionally narrowed by a title query or genre.
func (s *Service) Movies(ctx context.Context, query, genre string) []movie.Movie {
	if genre != "" {
		return s.catalog.FilterByGenre(ctx, genre)
	}
	return s.catalog.Search(ctx, query)
}

// MostWatched returns the top-n most finished movies.
func (s *Service) MostWatched(ctx context.Context, topN int) []types.MovieCount {
	return s.engine.MostWatched(s.watchLog.Events(ctx), topN)
}

// HighestRated returns the top-n movies by rating.
func (s *Service) HighestRated(ctx context.Context, topN int) []types.RatedMovie {
	return s.engine.HighestRated(movie.Records(s.catalog.List(ctx)), topN)
}

// Trending returns the full finish ranking inside the trailing window.
func (s *Service) Trending(ctx context.Context, recentDays int) []types.MovieCount {
	if recentDays <= 0 {
		recentDays = s.trendingWindowDays
	}
	return s.engine.Trending(s.watchLog.Events(ctx), recentDays)
}

// RecentFinishes exposes the store-level windowed query, which rejects
// non-positive windows instead of substituting a default.
func (s *Service) RecentFinishes(ctx context.Context, windowDays int) ([]types.MovieCount, error) {
	return s.watchLog.RecentFinishes(ctx, windowDays)
}

// Engagement tallies per-user activity.
func (s *Service) Engagement(ctx context.Context) map[string]types.Engagement {
	return s.engine.UserEngagement(s.watchLog.Events(ctx))
}

// AverageWatchTime returns the mean watch seconds across events.
func (s *Service) AverageWatchTime(ctx context.Context) float64 {
	return s.engine.AverageWatchTime(s.watchLog.Events(ctx))
}

// Accuracy computes the precision/recall diagnostic for a recommendation set.
func (s *Service) Accuracy(_ context.Context, recommendations, actual map[string][]string, k int) types.Accuracy {
	return s.engine.RecommendationAccuracy(recommendations, actual, k)
}

// Recommendations builds ranked lists for every user in the watch log.
func (s *Service) Recommendations(ctx context.Context, k int) map[string][]string {
	return s.recommender.RecommendAll(ctx, s.watchLog.Events(ctx), s.catalog.List(ctx), k)
}

// Report builds the composite usage snapshot.
func (s *Service) Report(ctx context.Context) types.UsageReport {
	start := time.Now()
	report := s.engine.UsageReport(movie.Records(s.catalog.List(ctx)), s.watchLog.Events(ctx))
	metrics.RecordReportBuild(float64(time.Since(start).Milliseconds()))
	return report
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":        s.started,
		"catalog":        s.catalogName,
		"catalogMaxSize": s.catalogMaxSize,
		"dedupeSize":     s.dedupeSize,
	}
	if s.started {
		stats["movies"] = s.catalog.Count(ctx)
		stats["events"] = s.watchLog.Count(ctx)
		stats["uniqueUsers"] = s.watchLog.UniqueUsers(ctx)
	}
	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
