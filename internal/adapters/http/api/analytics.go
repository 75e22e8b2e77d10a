// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// AnalyticsHandler handles the aggregate query endpoints.
type AnalyticsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(deps Dependencies, maxLimit int) *AnalyticsHandler {
	return &AnalyticsHandler{deps: deps, maxLimit: maxLimit}
}

// limit reads ?limit. A missing or malformed value falls back to 0, which
// the engine turns into its default; a value above the cap is a client error.
func (h *AnalyticsHandler) limit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true
	}
	if n > h.maxLimit {
		return 0, false
	}
	return n, true
}

// HandleMostWatched handles GET /analytics/most-watched?limit=N requests.
func (h *AnalyticsHandler) HandleMostWatched(w http.ResponseWriter, r *http.Request) {
	const op = "api.most_watched"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n, ok := h.limit(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.MostWatched(r.Context(), n))
}

// HandleHighestRated handles GET /analytics/highest-rated?limit=N requests.
func (h *AnalyticsHandler) HandleHighestRated(w http.ResponseWriter, r *http.Request) {
	const op = "api.highest_rated"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n, ok := h.limit(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.HighestRated(r.Context(), n))
}

// HandleTrending handles GET /analytics/trending?days=N requests. The result
// is never truncated; days falls back to the configured window when missing
// or malformed.
func (h *AnalyticsHandler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	writeJSON(w, http.StatusOK, h.deps.Trending(r.Context(), days))
}

// HandleEngagement handles GET /analytics/engagement requests.
func (h *AnalyticsHandler) HandleEngagement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Engagement(r.Context()))
}

// HandleAverageWatchTime handles GET /analytics/average-watch-time requests.
func (h *AnalyticsHandler) HandleAverageWatchTime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"average_watch_seconds": h.deps.AverageWatchTime(r.Context()),
	})
}

// accuracyRequest mirrors the OpenAPI schema for POST /analytics/accuracy.
type accuracyRequest struct {
	Recommendations map[string][]string `json:"recommendations"`
	Actual          map[string][]string `json:"actual"`
	K               int                 `json:"k"`
}

// HandleAccuracy handles POST /analytics/accuracy requests. When the body
// omits recommendations, lists are generated from the catalog and watch log.
func (h *AnalyticsHandler) HandleAccuracy(w http.ResponseWriter, r *http.Request) {
	const op = "api.accuracy"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req accuracyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Recommendations == nil {
		req.Recommendations = h.deps.Recommendations(r.Context(), req.K)
	}
	writeJSON(w, http.StatusOK, h.deps.Accuracy(r.Context(), req.Recommendations, req.Actual, req.K))
}

// HandleRecommendations handles GET /analytics/recommendations?k=N requests.
func (h *AnalyticsHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))
	writeJSON(w, http.StatusOK, h.deps.Recommendations(r.Context(), k))
}
