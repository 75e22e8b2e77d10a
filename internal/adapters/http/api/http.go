// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/reelworks/marquee/internal/domain/dedupe"
	"github.com/reelworks/marquee/internal/domain/event"
	"github.com/reelworks/marquee/internal/domain/movie"
	"github.com/reelworks/marquee/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Ingestion and catalog writes.
	AddEvent(ctx context.Context, p event.Params) (event.WatchEvent, error)
	AddMovie(ctx context.Context, m movie.Movie) error
	RemoveMovie(ctx context.Context, movieID string)

	// Read operations.
	GetMovie(ctx context.Context, movieID string) (movie.Movie, error)
	Movies(ctx context.Context, query, genre string) []movie.Movie
	MostWatched(ctx context.Context, topN int) []types.MovieCount
	HighestRated(ctx context.Context, topN int) []types.RatedMovie
	Trending(ctx context.Context, recentDays int) []types.MovieCount
	Engagement(ctx context.Context) map[string]types.Engagement
	AverageWatchTime(ctx context.Context) float64
	Accuracy(ctx context.Context, recommendations, actual map[string][]string, k int) types.Accuracy
	Recommendations(ctx context.Context, k int) map[string][]string
	Report(ctx context.Context) types.UsageReport
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	eventsHandler    *EventsHandler
	moviesHandler    *MoviesHandler
	analyticsHandler *AnalyticsHandler
	reportHandler    *ReportHandler
}

// NewServer creates a new API server with all handlers. maxTopLimit caps
// ?limit on the list endpoints.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxTopLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		eventsHandler:    NewEventsHandler(deps),
		moviesHandler:    NewMoviesHandler(deps),
		analyticsHandler: NewAnalyticsHandler(deps, maxTopLimit),
		reportHandler:    NewReportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/movies", MetricsMiddleware(s.moviesHandler.HandleMovies, "movies"))
	mux.HandleFunc("/movies/", MetricsMiddleware(s.moviesHandler.HandleMovieByID, "movie"))
	mux.HandleFunc("/analytics/most-watched", MetricsMiddleware(s.analyticsHandler.HandleMostWatched, "most_watched"))
	mux.HandleFunc("/analytics/highest-rated", MetricsMiddleware(s.analyticsHandler.HandleHighestRated, "highest_rated"))
	mux.HandleFunc("/analytics/trending", MetricsMiddleware(s.analyticsHandler.HandleTrending, "trending"))
	mux.HandleFunc("/analytics/engagement", MetricsMiddleware(s.analyticsHandler.HandleEngagement, "engagement"))
	mux.HandleFunc("/analytics/average-watch-time", MetricsMiddleware(s.analyticsHandler.HandleAverageWatchTime, "average_watch_time"))
	mux.HandleFunc("/analytics/accuracy", MetricsMiddleware(s.analyticsHandler.HandleAccuracy, "accuracy"))
	mux.HandleFunc("/analytics/recommendations", MetricsMiddleware(s.analyticsHandler.HandleRecommendations, "recommendations"))
	mux.HandleFunc("/report", MetricsMiddleware(s.reportHandler.HandleReport, "report"))
}

type ackResponse struct {
	Status    string `json:"status"`
	EventID   string `json:"event_id,omitempty"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
