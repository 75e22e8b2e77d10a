package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/reelworks/marquee/pkg/logger"
)

// Run seeds the target service with demo data and fetches the usage report.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	stats := &Stats{StartTime: time.Now()}
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic seed for reproducible demo data

	log := logger.Get()
	log.Info(ctx, "seeding demo data",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("movies", cfg.NumMovies),
		logger.Int("users", cfg.NumUsers),
		logger.Int("events", cfg.NumEvents),
	)

	c := newClient(cfg)
	if err := c.checkHealth(ctx); err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}

	movies := generateMovies(cfg, rng)
	if err := c.submitMovies(ctx, movies, stats); err != nil {
		return nil, fmt.Errorf("movie submission failed: %w", err)
	}

	events := generateEvents(cfg, movies, rng, time.Now())
	if err := c.submitEvents(ctx, events, stats); err != nil {
		return nil, fmt.Errorf("event submission failed: %w", err)
	}

	if err := c.getJSON(ctx, "/report", &stats.Report); err != nil {
		return nil, fmt.Errorf("report retrieval failed: %w", err)
	}
	if err := verify(cfg, stats); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(stats.StartTime)
	log.Info(ctx, "seeding complete",
		logger.Int("moviesCreated", stats.MoviesCreated),
		logger.Int("eventsStored", stats.EventsStored),
		logger.Int("eventsFailed", stats.EventsFailed),
		logger.String("duration", stats.Duration.String()),
	)
	return stats, nil
}

// verify cross-checks the report totals against what was submitted.
func verify(cfg *Config, stats *Stats) error {
	if stats.EventsFailed > 0 {
		return fmt.Errorf("%d events were rejected", stats.EventsFailed)
	}
	if got, want := stats.Report.Totals.Movies, stats.MoviesCreated; got != want {
		return fmt.Errorf("report shows %d movies, expected %d", got, want)
	}
	if got, want := stats.Report.Totals.Events, stats.EventsStored; got != want {
		return fmt.Errorf("report shows %d events, expected %d", got, want)
	}
	if stats.Report.Totals.UniqueUsers > cfg.NumUsers {
		return fmt.Errorf("report shows %d users, generated at most %d", stats.Report.Totals.UniqueUsers, cfg.NumUsers)
	}
	return nil
}
