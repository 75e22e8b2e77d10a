// Package seed generates demo catalog data, loads it into a running service,
// and prints the resulting usage report.
package seed

import (
	"time"

	"github.com/reelworks/marquee/internal/domain/types"
)

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL   string        // Base URL of the service
	NumMovies int           // Number of movies to generate
	NumUsers  int           // Number of users to simulate
	NumEvents int           // Number of watch events to generate
	SpanDays  int           // Timestamps are spread over the trailing span
	Seed      int64         // RNG seed; fixed for reproducible demos
	Timeout   time.Duration // HTTP request timeout
}

// movieRequest mirrors the POST /movies schema.
type movieRequest struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
	Year   int      `json:"year"`
	Rating *float64 `json:"rating,omitempty"`
}

// eventRequest mirrors the POST /events schema.
type eventRequest struct {
	EventID      string `json:"event_id"`
	UserID       string `json:"user_id"`
	MovieID      string `json:"movie_id"`
	Kind         string `json:"kind"`
	Timestamp    string `json:"timestamp"`
	WatchSeconds int    `json:"watch_seconds"`
}

// ackResponse mirrors the event submission acknowledgement.
type ackResponse struct {
	Status    string `json:"status"`
	EventID   string `json:"event_id"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds seeding statistics.
type Stats struct {
	MoviesCreated   int
	EventsSubmitted int
	EventsStored    int
	EventsDuplicate int
	EventsFailed    int
	Report          types.UsageReport
	StartTime       time.Time
	Duration        time.Duration
}
