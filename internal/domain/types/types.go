// Package types contains common types used across the application
package types

// MovieCount pairs a movie id with a finish count, ordered most-watched first.
type MovieCount struct {
	MovieID  string `json:"movie_id"`
	Finishes int    `json:"finishes"`
}

// RatedMovie pairs a movie title with its numeric rating.
type RatedMovie struct {
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
}

// Engagement tallies one user's activity across the watch log.
type Engagement struct {
	Events       int `json:"event_count"`
	Finishes     int `json:"finish_count"`
	WatchSeconds int `json:"total_watch_seconds"`
}

// Accuracy is the averaged precision/recall diagnostic for a recommendation set.
type Accuracy struct {
	Precision float64 `json:"precision_at_k"`
	Recall    float64 `json:"recall_at_k"`
	K         int     `json:"k"`
}

// ReportTotals holds the scalar section of a usage report.
type ReportTotals struct {
	Movies              int     `json:"movies"`
	UniqueUsers         int     `json:"unique_users"`
	Events              int     `json:"events"`
	AverageWatchSeconds float64 `json:"average_watch_seconds"`
}

// UsageReport is the composite snapshot returned by GET /report.
type UsageReport struct {
	Totals      ReportTotals `json:"totals"`
	TopByViews  []MovieCount `json:"top-by-views"`
	TopByRating []RatedMovie `json:"top-by-rating"`
	Trending    []MovieCount `json:"trending"`
}
