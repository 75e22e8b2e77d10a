// Package recommend builds per-user recommendation lists from the catalog and
// a user's watch history. It is a diagnostic feeder for the accuracy report,
// not a quality-optimized ranker.
package recommend

import (
	"context"
	"sort"

	"github.com/reelworks/marquee/internal/domain/event"
	"github.com/reelworks/marquee/internal/domain/movie"
)

// Default recommender configuration constants.
const (
	defaultGenreWeight = 1.0
	DefaultListSize    = 5
)

// Recommender produces a ranked list of movie ids for one user.
type Recommender interface {
	Recommend(ctx context.Context, userID string, history []event.WatchEvent, movies []movie.Movie, k int) []string
}

// RatingRecommender ranks unseen movies by rating weighted per genre.
type RatingRecommender struct {
	genreWeights  map[string]float64
	defaultWeight float64
}

// New creates a rating recommender with configuration options.
func New(opts ...Option) *RatingRecommender {
	r := &RatingRecommender{
		genreWeights:  make(map[string]float64),
		defaultWeight: defaultGenreWeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend returns up to k movie ids ranked by weighted rating, highest
// first. Movies the user already finished and unrated movies are excluded.
// Ties break by movie id ascending so the output is deterministic.
func (r *RatingRecommender) Recommend(_ context.Context, userID string, history []event.WatchEvent, movies []movie.Movie, k int) []string {
	if k <= 0 {
		k = DefaultListSize
	}
	finished := make(map[string]struct{})
	for _, ev := range history {
		if ev.UserID == userID && ev.IsFinish() {
			finished[ev.MovieID] = struct{}{}
		}
	}

	type scored struct {
		id    string
		score float64
	}
	candidates := make([]scored, 0, len(movies))
	for _, m := range movies {
		if !m.Rated {
			continue
		}
		if _, seen := finished[m.ID]; seen {
			continue
		}
		candidates = append(candidates, scored{id: m.ID, score: m.Rating * r.weightFor(m)})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.id
	}
	return out
}

// RecommendAll builds lists for every user appearing in history, shaped for
// the accuracy diagnostic.
func (r *RatingRecommender) RecommendAll(ctx context.Context, history []event.WatchEvent, movies []movie.Movie, k int) map[string][]string {
	users := make(map[string]struct{})
	for _, ev := range history {
		if ev.UserID != "" {
			users[ev.UserID] = struct{}{}
		}
	}
	out := make(map[string][]string, len(users))
	for user := range users {
		out[user] = r.Recommend(ctx, user, history, movies, k)
	}
	return out
}

// weightFor returns the best weight across the movie's genres, falling back
// to the default for unknown or missing genres.
func (r *RatingRecommender) weightFor(m movie.Movie) float64 {
	best := 0.0
	found := false
	for _, g := range m.Genres {
		if w, ok := r.genreWeights[g]; ok && w > best {
			best = w
			found = true
		}
	}
	if !found {
		return r.defaultWeight
	}
	return best
}
