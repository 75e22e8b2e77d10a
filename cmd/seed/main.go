package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/reelworks/marquee/internal/seed"
	"github.com/reelworks/marquee/pkg/logger"
)

// Default configuration constants.
const (
	defaultMovies     = 40
	defaultUsers      = 25
	defaultEvents     = 500
	defaultSpanDays   = 30
	defaultSeed       = 42
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numMovies = flag.Int("movies", defaultMovies, "Number of movies to generate")
		numUsers  = flag.Int("users", defaultUsers, "Number of users to simulate")
		numEvents = flag.Int("events", defaultEvents, "Number of watch events to generate")
		spanDays  = flag.Int("span", defaultSpanDays, "Spread event timestamps over this many trailing days")
		rngSeed   = flag.Int64("seed", defaultSeed, "RNG seed for reproducible data")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	stats, err := seed.Run(ctx, &seed.Config{
		BaseURL:   *baseURL,
		NumMovies: *numMovies,
		NumUsers:  *numUsers,
		NumEvents: *numEvents,
		SpanDays:  *spanDays,
		Seed:      *rngSeed,
		Timeout:   *timeout,
	})
	if err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(stats.Report)
}
