// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	repository "github.com/reelworks/marquee/internal/adapters/repository"
	"github.com/reelworks/marquee/internal/domain/movie"
)

// movieRequest mirrors the OpenAPI schema for POST /movies.
type movieRequest struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
	Year   int      `json:"year"`
	Rating *float64 `json:"rating"`
}

// MoviesHandler handles catalog requests.
type MoviesHandler struct {
	deps Dependencies
}

// NewMoviesHandler creates a new movies handler.
func NewMoviesHandler(deps Dependencies) *MoviesHandler {
	return &MoviesHandler{deps: deps}
}

// HandleMovies handles POST /movies and GET /movies?query=&genre= requests.
func (h *MoviesHandler) HandleMovies(w http.ResponseWriter, r *http.Request) {
	const op = "api.movies"
	switch r.Method {
	case http.MethodPost:
		var req movieRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		m := movie.Movie{
			ID:     req.ID,
			Title:  req.Title,
			Genres: req.Genres,
			Year:   req.Year,
		}
		if req.Rating != nil {
			m.Rating = *req.Rating
			m.Rated = true
		}
		if err := h.deps.AddMovie(r.Context(), m); err != nil {
			status := http.StatusBadRequest
			code := "invalid_movie"
			if errors.Is(err, repository.ErrCatalogFull) {
				status = http.StatusConflict
				code = "catalog_full"
			}
			writeError(w, status, code, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, m)
	case http.MethodGet:
		q := r.URL.Query()
		writeJSON(w, http.StatusOK, h.deps.Movies(r.Context(), q.Get("query"), q.Get("genre")))
	default:
		http.NotFound(w, r)
	}
}

// HandleMovieByID handles GET and DELETE /movies/{id} requests.
func (h *MoviesHandler) HandleMovieByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.movie_by_id"
	id := strings.TrimPrefix(r.URL.Path, "/movies/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	switch r.Method {
	case http.MethodGet:
		m, err := h.deps.GetMovie(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, m)
	case http.MethodDelete:
		h.deps.RemoveMovie(r.Context(), id)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}
