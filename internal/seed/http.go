package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// client wraps http.Client with the base URL of the target service.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(cfg *Config) *client {
	return &client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
	}
}

// checkHealth verifies the service answers before seeding starts.
func (c *client) checkHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("service not reachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status %d", resp.StatusCode)
	}
	return nil
}

// postJSON posts body and decodes the JSON response into out when non-nil.
func (c *client) postJSON(ctx context.Context, path string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// getJSON fetches path and decodes the JSON response into out.
func (c *client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// submitMovies posts every generated movie.
func (c *client) submitMovies(ctx context.Context, movies []movieRequest, stats *Stats) error {
	for _, m := range movies {
		status, err := c.postJSON(ctx, "/movies", m, nil)
		if err != nil {
			return fmt.Errorf("post movie %s: %w", m.ID, err)
		}
		if status != http.StatusCreated {
			return fmt.Errorf("post movie %s: status %d", m.ID, status)
		}
		stats.MoviesCreated++
	}
	return nil
}

// submitEvents posts every generated event, tallying the acknowledgements.
func (c *client) submitEvents(ctx context.Context, events []eventRequest, stats *Stats) error {
	for _, ev := range events {
		var ack ackResponse
		status, err := c.postJSON(ctx, "/events", ev, &ack)
		stats.EventsSubmitted++
		switch {
		case err != nil:
			return fmt.Errorf("post event %s: %w", ev.EventID, err)
		case status == http.StatusCreated:
			stats.EventsStored++
		case ack.Duplicate:
			stats.EventsDuplicate++
		default:
			stats.EventsFailed++
		}
	}
	return nil
}

// Timeout default used when the caller passes zero.
const defaultTimeout = 30 * time.Second
