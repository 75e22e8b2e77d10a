// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/reelworks/marquee/internal/domain/event"
)

// eventRequest mirrors the OpenAPI schema for POST /events.
type eventRequest struct {
	EventID      string `json:"event_id"`
	UserID       string `json:"user_id"`
	MovieID      string `json:"movie_id"`
	Kind         string `json:"kind"`
	Timestamp    string `json:"timestamp"`
	WatchSeconds int    `json:"watch_seconds"`
}

// EventsHandler handles watch-event submissions.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandlePostEvent handles POST /events requests. Clients may retry with the
// same event_id; replays are acknowledged without a second append. Requests
// without an event_id get a generated one and skip the idempotency check.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	generated := strings.TrimSpace(req.EventID) == ""
	if generated {
		req.EventID = uuid.NewString()
	} else if h.deps.SeenAndRecord(r.Context(), req.EventID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", EventID: req.EventID, Duplicate: true})
		return
	}

	ev, err := h.deps.AddEvent(r.Context(), event.Params{
		EventID:      req.EventID,
		UserID:       req.UserID,
		MovieID:      req.MovieID,
		Kind:         req.Kind,
		Timestamp:    req.Timestamp,
		WatchSeconds: req.WatchSeconds,
	})
	if err != nil {
		// Release the id so a corrected retry is not treated as a replay.
		if !generated {
			h.deps.Unrecord(r.Context(), req.EventID)
		}
		writeError(w, http.StatusBadRequest, "invalid_event", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{Status: "stored", EventID: ev.EventID, Duplicate: false})
}
