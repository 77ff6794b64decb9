package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the Free Dictionary API endpoint for English entries.
	DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

	defaultTimeout    = 10 * time.Second
	DefaultRetryDelay = 500 * time.Millisecond
)

// ErrNotFound is returned when the API has no entry for the word.
var ErrNotFound = errors.New("dictionary: word not found")

// Client fetches entries from the Free Dictionary API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      bool
	retryDelay time.Duration
	throttle   *throttle
	log        zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests and self-hosted mirrors).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetry toggles the single retry on network errors and 5xx responses.
func WithRetry(enabled bool, delay time.Duration) Option {
	return func(c *Client) {
		c.retry = enabled
		if delay >= 0 {
			c.retryDelay = delay
		}
	}
}

// WithMinInterval spaces consecutive requests at least d apart.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) {
		c.throttle = newThrottle(d)
	}
}

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l.With().Str("adapter", "dictionary").Logger()
	}
}

// NewClient creates a Client with the default endpoint and timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		retry:      true,
		retryDelay: DefaultRetryDelay,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the entries for word. A 404 or an empty list yields
// ErrNotFound; any other non-200 status or undecodable body is an error.
func (c *Client) Fetch(ctx context.Context, word string) ([]Entry, error) {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return nil, fmt.Errorf("dictionary: empty word: %w", ErrNotFound)
	}
	if err := c.throttle.wait(ctx); err != nil {
		return nil, fmt.Errorf("dictionary: throttle: %w", err)
	}

	reqURL := c.baseURL + "/" + url.PathEscape(trimmed)
	c.log.Debug().Str("word", trimmed).Msg("dictionary request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dictionary: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.doWithRetry(ctx, req, trimmed)
	if err != nil {
		c.log.Error().Err(err).Str("word", trimmed).Msg("dictionary request failed")
		return nil, fmt.Errorf("dictionary: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("dictionary: read body: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("dictionary: decode json: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	for i := range entries {
		if entries[i].Meanings == nil {
			entries[i].Meanings = []Meaning{}
		}
	}

	c.log.Debug().
		Str("word", trimmed).
		Int("status", resp.StatusCode).
		Int("entries", len(entries)).
		Int("meanings", len(entries[0].Meanings)).
		Msg("dictionary response")

	return entries, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if !c.retry {
		return resp, err
	}

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.Warn().Str("word", word).Str("reason", reason).Msg("dictionary retry")

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	if c.retryDelay > 0 {
		timer := time.NewTimer(c.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return c.httpClient.Do(req)
}
