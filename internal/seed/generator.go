package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Demo vocabulary for generated titles.
var (
	genres     = []string{"drama", "comedy", "thriller", "sci-fi", "horror", "documentary"}
	adjectives = []string{"Silent", "Crimson", "Forgotten", "Electric", "Midnight", "Golden", "Broken", "Distant"}
	nouns      = []string{"Harbor", "Signal", "Orchard", "Frontier", "Reckoning", "Cartographer", "Winter", "Parallax"}
)

// Watch-event generation parameters.
const (
	ratingMin       = 4.0
	ratingRange     = 6.0
	unratedOdds     = 5 // one in N movies ships without a rating
	finishOdds      = 2 // one in N events is a finish
	maxWatchSeconds = 7200
	minYear         = 1950
	yearRange       = 75
)

// generateMovies builds cfg.NumMovies demo movies with deterministic ids.
func generateMovies(cfg *Config, rng *rand.Rand) []movieRequest {
	movies := make([]movieRequest, cfg.NumMovies)
	for i := range movies {
		m := movieRequest{
			ID:     fmt.Sprintf("m-%03d", i+1),
			Title:  fmt.Sprintf("%s %s", adjectives[rng.Intn(len(adjectives))], nouns[rng.Intn(len(nouns))]),
			Genres: []string{genres[rng.Intn(len(genres))]},
			Year:   minYear + rng.Intn(yearRange),
		}
		if rng.Intn(unratedOdds) != 0 {
			r := ratingMin + rng.Float64()*ratingRange
			m.Rating = &r
		}
		movies[i] = m
	}
	return movies
}

// generateEvents builds cfg.NumEvents watch events across cfg.NumUsers users,
// timestamps spread over the trailing cfg.SpanDays window so the trending
// report has something to show.
func generateEvents(cfg *Config, movies []movieRequest, rng *rand.Rand, now time.Time) []eventRequest {
	kinds := []string{"start", "finish", "rate"}
	events := make([]eventRequest, cfg.NumEvents)
	for i := range events {
		kind := kinds[rng.Intn(len(kinds))]
		if rng.Intn(finishOdds) == 0 {
			kind = "finish"
		}
		age := time.Duration(rng.Int63n(int64(cfg.SpanDays) * int64(24*time.Hour)))
		ev := eventRequest{
			EventID:   uuid.NewString(),
			UserID:    fmt.Sprintf("u-%03d", rng.Intn(cfg.NumUsers)+1),
			MovieID:   movies[rng.Intn(len(movies))].ID,
			Kind:      kind,
			Timestamp: now.Add(-age).UTC().Format(time.RFC3339),
		}
		if kind != "rate" {
			ev.WatchSeconds = rng.Intn(maxWatchSeconds)
		}
		events[i] = ev
	}
	return events
}
