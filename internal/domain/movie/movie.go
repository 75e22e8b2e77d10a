// Package movie defines movie records and the narrow read-only view the
// analytics layer consumes.
package movie

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Valid release-year bounds. 1888 is the year of the earliest surviving film.
const (
	MinYear = 1888
	MaxYear = 2100
)

// Movie is a catalog entry.
type Movie struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres,omitempty"`
	Year   int      `json:"year,omitempty"`   // 0 = unknown
	Rating float64  `json:"rating,omitempty"` // meaningful only when Rated
	Rated  bool     `json:"rated"`
}

// Validate checks the fields required for catalog storage.
func (m Movie) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidMovie)
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidMovie)
	}
	if m.Year != 0 && (m.Year < MinYear || m.Year > MaxYear) {
		return fmt.Errorf("%w: year %d outside %d..%d", ErrInvalidMovie, m.Year, MinYear, MaxYear)
	}
	return nil
}

// HasGenre reports whether the movie carries the given genre, case-insensitive.
func (m Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// Record is the normalized read-only view analytics operations depend on.
// Both typed movies and plain mappings adapt to it; missing fields come
// through as zero values rather than failing.
type Record struct {
	Title  string
	Rating float64
	Rated  bool
	Genres []string
	Year   int
}

// Record adapts a typed movie to the analytics view.
func (m Movie) Record() Record {
	return Record{
		Title:  m.Title,
		Rating: m.Rating,
		Rated:  m.Rated,
		Genres: append([]string(nil), m.Genres...),
		Year:   m.Year,
	}
}

// FromMap adapts a plain mapping (e.g. decoded JSON) to a Record. It accepts
// both "genre" (single) and "genres" (list) keys and any numeric rating
// representation; a missing or non-numeric rating leaves Rated false.
func FromMap(m map[string]any) Record {
	var r Record
	if t, ok := m["title"].(string); ok {
		r.Title = t
	}
	if v, ok := numeric(m["rating"]); ok {
		r.Rating = v
		r.Rated = true
	}
	if y, ok := numeric(m["year"]); ok {
		r.Year = int(y)
	}
	switch g := m["genres"].(type) {
	case []string:
		r.Genres = append(r.Genres, g...)
	case []any:
		for _, v := range g {
			if s, ok := v.(string); ok {
				r.Genres = append(r.Genres, s)
			}
		}
	}
	if g, ok := m["genre"].(string); ok && g != "" {
		r.Genres = append(r.Genres, g)
	}
	return r
}

// Records adapts a slice of typed movies.
func Records(movies []Movie) []Record {
	out := make([]Record, len(movies))
	for i, m := range movies {
		out[i] = m.Record()
	}
	return out
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
