// Package repository holds the in-memory stores: the append-only watch log
// and the movie catalog.
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/reelworks/marquee/internal/domain/event"
	"github.com/reelworks/marquee/internal/domain/types"
	"github.com/reelworks/marquee/pkg/metrics"
)

// Log provides append/read access to the watch-event history.
type Log interface {
	// Append validates and stores a new event. The log is unchanged when
	// validation fails.
	Append(ctx context.Context, p event.Params) (event.WatchEvent, error)

	// Events returns a defensive copy of the stored events in insertion
	// order, which is the log's only ordering guarantee.
	Events(ctx context.Context) []event.WatchEvent

	// Count returns the number of stored events.
	Count(ctx context.Context) int

	// UniqueUsers returns the number of distinct user ids seen.
	UniqueUsers(ctx context.Context) int

	// FinishesForMovie counts finish events for one movie id.
	FinishesForMovie(ctx context.Context, movieID string) int

	// RecentFinishes returns per-movie finish counts inside the trailing
	// windowDays window, count descending with stable ties. Returns
	// ErrInvalidWindow for a non-positive window.
	RecentFinishes(ctx context.Context, windowDays int) ([]types.MovieCount, error)
}

// MemoryLog is the in-memory Log implementation. Events are immutable once
// stored and never removed or reordered.
type MemoryLog struct {
	mu     sync.RWMutex
	events []event.WatchEvent
	now    func() time.Time
}

// NewMemoryLog creates an empty watch log with configuration options.
func NewMemoryLog(opts ...LogOption) *MemoryLog {
	l := &MemoryLog{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append validates p and stores the normalized event.
func (l *MemoryLog) Append(_ context.Context, p event.Params) (event.WatchEvent, error) {
	ev, err := event.New(p, l.now)
	if err != nil {
		return event.WatchEvent{}, err
	}

	l.mu.Lock()
	l.events = append(l.events, ev)
	size := len(l.events)
	l.mu.Unlock()

	metrics.UpdateWatchLogSize(size)
	return ev, nil
}

// Events returns a copy of the stored sequence.
func (l *MemoryLog) Events(_ context.Context) []event.WatchEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]event.WatchEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Count returns the number of stored events.
func (l *MemoryLog) Count(_ context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// UniqueUsers counts distinct user ids across stored events.
func (l *MemoryLog) UniqueUsers(_ context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	users := make(map[string]struct{}, len(l.events))
	for _, ev := range l.events {
		if ev.UserID != "" {
			users[ev.UserID] = struct{}{}
		}
	}
	return len(users)
}

// FinishesForMovie counts finish events for movieID.
func (l *MemoryLog) FinishesForMovie(_ context.Context, movieID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, ev := range l.events {
		if ev.MovieID == movieID && ev.IsFinish() {
			n++
		}
	}
	return n
}

// RecentFinishes aggregates finish counts per movie inside the window.
// Stored timestamps always parse; an unparsable one (possible only for events
// injected outside Append) is skipped rather than failing the query.
func (l *MemoryLog) RecentFinishes(_ context.Context, windowDays int) ([]types.MovieCount, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("%w: window of %d days", ErrInvalidWindow, windowDays)
	}
	cutoff := l.now().UTC().Add(-time.Duration(windowDays) * 24 * time.Hour)

	l.mu.RLock()
	counts := make(map[string]int)
	var order []string
	for _, ev := range l.events {
		if !ev.IsFinish() || ev.MovieID == "" {
			continue
		}
		ts, ok := ev.Time()
		if !ok || ts.Before(cutoff) {
			continue
		}
		if _, seen := counts[ev.MovieID]; !seen {
			order = append(order, ev.MovieID)
		}
		counts[ev.MovieID]++
	}
	l.mu.RUnlock()

	out := make([]types.MovieCount, 0, len(order))
	for _, id := range order {
		out = append(out, types.MovieCount{MovieID: id, Finishes: counts[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Finishes > out[j].Finishes
	})
	return out, nil
}
