package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/reelworks/marquee/internal/domain/movie"
	"github.com/reelworks/marquee/pkg/metrics"
)

const defaultCatalogMaxSize = 5000

// Catalog is a bounded in-memory movie store keyed by movie id. Listing
// preserves insertion order.
type Catalog struct {
	mu      sync.RWMutex
	name    string
	maxSize int
	movies  map[string]movie.Movie
	order   []string
}

// NewCatalog creates a named catalog. The name must be non-empty and the
// configured size positive.
func NewCatalog(name string, opts ...CatalogOption) (*Catalog, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidCatalog)
	}
	c := &Catalog{
		name:    name,
		maxSize: defaultCatalogMaxSize,
		movies:  make(map[string]movie.Movie),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxSize <= 0 {
		return nil, fmt.Errorf("%w: max size must be positive", ErrInvalidCatalog)
	}
	return c, nil
}

// Name returns the catalog name.
func (c *Catalog) Name() string {
	return c.name
}

// Add validates and stores a movie. Re-adding an existing id replaces the
// entry in place and does not count against the size bound.
func (c *Catalog) Add(_ context.Context, m movie.Movie) error {
	if err := m.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.movies[m.ID]; !exists {
		if len(c.movies) >= c.maxSize {
			return fmt.Errorf("%w: %q holds %d movies", ErrCatalogFull, c.name, c.maxSize)
		}
		c.order = append(c.order, m.ID)
	}
	c.movies[m.ID] = m
	metrics.UpdateCatalogSize(len(c.movies))
	return nil
}

// Remove deletes a movie if present; removing an unknown id is a no-op.
func (c *Catalog) Remove(_ context.Context, movieID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.movies[movieID]; !exists {
		return
	}
	delete(c.movies, movieID)
	for i, id := range c.order {
		if id == movieID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	metrics.UpdateCatalogSize(len(c.movies))
}

// Get returns the movie for id or ErrNotFound.
func (c *Catalog) Get(_ context.Context, movieID string) (movie.Movie, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.movies[movieID]
	if !ok {
		return movie.Movie{}, fmt.Errorf("%w: movie %q", ErrNotFound, movieID)
	}
	return m, nil
}

// List returns all movies in insertion order.
func (c *Catalog) List(_ context.Context) []movie.Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot()
}

// Count returns the number of stored movies.
func (c *Catalog) Count(_ context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.movies)
}

// Search returns movies whose title contains query, case-insensitive.
func (c *Catalog) Search(_ context.Context, query string) []movie.Movie {
	query = strings.ToLower(strings.TrimSpace(query))

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []movie.Movie
	for _, id := range c.order {
		m := c.movies[id]
		if query == "" || strings.Contains(strings.ToLower(m.Title), query) {
			out = append(out, m)
		}
	}
	return out
}

// FilterByGenre returns movies carrying the genre, case-insensitive.
func (c *Catalog) FilterByGenre(_ context.Context, genre string) []movie.Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []movie.Movie
	for _, id := range c.order {
		if m := c.movies[id]; m.HasGenre(genre) {
			out = append(out, m)
		}
	}
	return out
}

// RecommendByRating returns rated movies at or above minRating, best first,
// ties in insertion order.
func (c *Catalog) RecommendByRating(_ context.Context, minRating float64) []movie.Movie {
	c.mu.RLock()
	var out []movie.Movie
	for _, id := range c.order {
		if m := c.movies[id]; m.Rated && m.Rating >= minRating {
			out = append(out, m)
		}
	}
	c.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}

// snapshot copies the movie list; callers must hold at least a read lock.
func (c *Catalog) snapshot() []movie.Movie {
	out := make([]movie.Movie, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.movies[id])
	}
	return out
}
