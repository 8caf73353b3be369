package contrib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIURL is the public contributions API; the username is appended.
const DefaultAPIURL = "https://github-contributions-api.jogruber.de/v4/"

// Fetch errors.
var (
	ErrNotFound    = errors.New("user not found")
	ErrRateLimited = errors.New("contributions API rate limited")
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 4 << 20

// Client fetches contribution payloads over HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client for baseURL with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the payload for username.
func (c *Client) Fetch(ctx context.Context, username string) (*Payload, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("empty username")
	}

	endpoint := c.BaseURL + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching contributions for %s: %w", username, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response for %s: %w", username, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", username, ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("error fetching contributions: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return DecodePayload(body)
}

// Load fetches username's payload and normalizes it for year.
func (c *Client) Load(ctx context.Context, username string, year int) (*Grid, Stats, error) {
	p, err := c.Fetch(ctx, username)
	if err != nil {
		return nil, Stats{}, err
	}
	return Normalize(p, year), CalculateStats(p, year), nil
}
