// Package event contains the watch-event domain model and its validation rules.
package event

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the category of a watch event.
type Kind string

// Recognized event kinds. Anything else is rejected at append time.
const (
	KindStart  Kind = "start"
	KindFinish Kind = "finish"
	KindRate   Kind = "rate"
)

// ParseKind normalizes a raw event kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindStart:
		return KindStart, nil
	case KindFinish:
		return KindFinish, nil
	case KindRate:
		return KindRate, nil
	default:
		return "", fmt.Errorf("%w: kind %q must be one of start, finish, rate", ErrInvalidEvent, s)
	}
}

// WatchEvent is one user's interaction with one movie. Instances are built
// through New and are never mutated after they are stored.
type WatchEvent struct {
	EventID      string `json:"event_id,omitempty"`
	UserID       string `json:"user_id"`
	MovieID      string `json:"movie_id"`
	Kind         Kind   `json:"kind"`
	Timestamp    string `json:"timestamp"` // canonical RFC3339, UTC
	WatchSeconds int    `json:"watch_seconds"`
}

// Params carries the raw fields for a new watch event. Timestamp may be given
// either as an ISO-8601 string or as an already-typed time value in At; At
// wins when both are set. A zero Params timestamp means "now".
type Params struct {
	EventID      string
	UserID       string
	MovieID      string
	Kind         string
	Timestamp    string
	At           time.Time
	WatchSeconds int
}

// Timestamp layouts accepted on input. Output is always canonical RFC3339 UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// New validates p and returns a normalized event. The clock resolves a missing
// timestamp; callers inject it so tests stay deterministic.
func New(p Params, now func() time.Time) (WatchEvent, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return WatchEvent{}, fmt.Errorf("%w: user_id is required", ErrInvalidEvent)
	}
	if strings.TrimSpace(p.MovieID) == "" {
		return WatchEvent{}, fmt.Errorf("%w: movie_id is required", ErrInvalidEvent)
	}
	kind, err := ParseKind(p.Kind)
	if err != nil {
		return WatchEvent{}, err
	}
	if p.WatchSeconds < 0 {
		return WatchEvent{}, fmt.Errorf("%w: watch_seconds must not be negative", ErrInvalidEvent)
	}

	ts, err := normalizeTimestamp(p, now)
	if err != nil {
		return WatchEvent{}, err
	}

	return WatchEvent{
		EventID:      p.EventID,
		UserID:       p.UserID,
		MovieID:      p.MovieID,
		Kind:         kind,
		Timestamp:    ts,
		WatchSeconds: p.WatchSeconds,
	}, nil
}

func normalizeTimestamp(p Params, now func() time.Time) (string, error) {
	if !p.At.IsZero() {
		return p.At.UTC().Format(time.RFC3339), nil
	}
	if strings.TrimSpace(p.Timestamp) == "" {
		if now == nil {
			now = time.Now
		}
		return now().UTC().Format(time.RFC3339), nil
	}
	t, ok := ParseTimestamp(p.Timestamp)
	if !ok {
		return "", fmt.Errorf("%w: invalid timestamp %q", ErrInvalidEvent, p.Timestamp)
	}
	return t.UTC().Format(time.RFC3339), nil
}

// ParseTimestamp parses any accepted timestamp layout. Layouts without a zone
// are read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Time returns the event timestamp as a time value. Stored events always
// parse; the bool guards events built outside New.
func (e WatchEvent) Time() (time.Time, bool) {
	return ParseTimestamp(e.Timestamp)
}

// IsFinish reports whether the event marks a completed viewing.
func (e WatchEvent) IsFinish() bool {
	return e.Kind == KindFinish
}
