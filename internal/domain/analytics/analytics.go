// Package analytics computes read-only aggregates over movie records and
// watch events. Every operation is pure: inputs are never mutated and the
// same inputs always produce the same output for a fixed clock.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/reelworks/marquee/internal/domain/event"
	"github.com/reelworks/marquee/internal/domain/movie"
	"github.com/reelworks/marquee/internal/domain/types"
)

// Default aggregation parameters.
const (
	DefaultTopN         = 5
	DefaultTrendingDays = 7
	DefaultAccuracyK    = 5

	hoursPerDay = 24
)

// Engine exposes the aggregate computations. The zero value is not usable;
// construct it with New.
type Engine struct {
	now func() time.Time
}

// New creates an engine. The wall clock is the default; tests inject a fixed
// one through WithClock.
func New(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MostWatched counts finish events per movie and returns the topN pairs,
// count descending, ties in first-seen order. A non-positive topN silently
// falls back to DefaultTopN; this permissive substitution is part of the
// contract and must not become an error.
func (e *Engine) MostWatched(events []event.WatchEvent, topN int) []types.MovieCount {
	if topN <= 0 {
		topN = DefaultTopN
	}
	counts := finishCounts(events, nil)
	if len(counts) > topN {
		counts = counts[:topN]
	}
	return counts
}

// HighestRated returns up to topN (title, rating) pairs sorted rating
// descending with stable ties. Movies without a numeric rating are skipped,
// never reported as errors.
func (e *Engine) HighestRated(movies []movie.Record, topN int) []types.RatedMovie {
	if topN <= 0 {
		topN = DefaultTopN
	}
	rated := make([]types.RatedMovie, 0, len(movies))
	for _, m := range movies {
		if !m.Rated {
			continue
		}
		rated = append(rated, types.RatedMovie{Title: m.Title, Rating: m.Rating})
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})
	if len(rated) > topN {
		rated = rated[:topN]
	}
	return rated
}

// UserEngagement tallies per-user activity. Users absent from the event
// stream are absent from the result; there is no zero-filling.
func (e *Engine) UserEngagement(events []event.WatchEvent) map[string]types.Engagement {
	out := make(map[string]types.Engagement)
	for _, ev := range events {
		if ev.UserID == "" {
			continue
		}
		t := out[ev.UserID]
		t.Events++
		if ev.IsFinish() {
			t.Finishes++
		}
		t.WatchSeconds += ev.WatchSeconds
		out[ev.UserID] = t
	}
	return out
}

// AverageWatchTime returns the mean watch_seconds across events, and exactly
// 0 for an empty sequence.
func (e *Engine) AverageWatchTime(events []event.WatchEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	total := 0
	for _, ev := range events {
		total += ev.WatchSeconds
	}
	return float64(total) / float64(len(events))
}

// Trending is MostWatched restricted to finish events inside the trailing
// recentDays window, with two deliberate differences: the result is never
// truncated, and events whose timestamps do not parse are silently excluded.
// A non-positive window falls back to DefaultTrendingDays.
func (e *Engine) Trending(events []event.WatchEvent, recentDays int) []types.MovieCount {
	if recentDays <= 0 {
		recentDays = DefaultTrendingDays
	}
	cutoff := e.now().UTC().Add(-time.Duration(recentDays) * hoursPerDay * time.Hour)
	return finishCounts(events, func(ev event.WatchEvent) bool {
		ts, ok := ev.Time()
		return ok && !ts.Before(cutoff)
	})
}

// RecommendationAccuracy averages precision@k and recall@k over every user in
// actual with a non-empty actual list. A user with no (or an empty)
// recommendation list scores precision 0 but still counts toward the
// average. No qualifying users yields zeros, not an error.
func (e *Engine) RecommendationAccuracy(recommendations, actual map[string][]string, k int) types.Accuracy {
	if k <= 0 {
		k = DefaultAccuracyK
	}
	var totalPrecision, totalRecall float64
	users := 0
	for user, real := range actual {
		if len(real) == 0 {
			continue
		}
		users++
		top := recommendations[user]
		if len(top) > k {
			top = top[:k]
		}
		hits := 0
		for _, id := range top {
			if contains(real, id) {
				hits++
			}
		}
		if len(top) > 0 {
			totalPrecision += float64(hits) / float64(len(top))
		}
		totalRecall += float64(hits) / float64(len(real))
	}
	if users == 0 {
		return types.Accuracy{K: k}
	}
	return types.Accuracy{
		Precision: totalPrecision / float64(users),
		Recall:    totalRecall / float64(users),
		K:         k,
	}
}

// UsageReport bundles the aggregate views into one snapshot computed purely
// from the two inputs.
func (e *Engine) UsageReport(movies []movie.Record, events []event.WatchEvent) types.UsageReport {
	users := make(map[string]struct{})
	for _, ev := range events {
		if ev.UserID != "" {
			users[ev.UserID] = struct{}{}
		}
	}
	return types.UsageReport{
		Totals: types.ReportTotals{
			Movies:              len(movies),
			UniqueUsers:         len(users),
			Events:              len(events),
			AverageWatchSeconds: round2(e.AverageWatchTime(events)),
		},
		TopByViews:  e.MostWatched(events, DefaultTopN),
		TopByRating: e.HighestRated(movies, DefaultTopN),
		Trending:    e.Trending(events, DefaultTrendingDays),
	}
}

// finishCounts counts finish events per movie id, optionally filtered, and
// returns pairs sorted count descending with ties kept in first-seen order.
func finishCounts(events []event.WatchEvent, keep func(event.WatchEvent) bool) []types.MovieCount {
	counts := make(map[string]int)
	var order []string
	for _, ev := range events {
		if !ev.IsFinish() || ev.MovieID == "" {
			continue
		}
		if keep != nil && !keep(ev) {
			continue
		}
		if _, seen := counts[ev.MovieID]; !seen {
			order = append(order, ev.MovieID)
		}
		counts[ev.MovieID]++
	}
	out := make([]types.MovieCount, 0, len(order))
	for _, id := range order {
		out = append(out, types.MovieCount{MovieID: id, Finishes: counts[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Finishes > out[j].Finishes
	})
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
