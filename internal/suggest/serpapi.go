// Package suggest provides spelling suggestion sources used when a dictionary
// lookup fails.
package suggest

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

// DefaultSerpAPIURL is the SerpApi JSON search endpoint.
const DefaultSerpAPIURL = "https://serpapi.com/search.json"

// ErrNoAPIKey is returned by SerpAPI when no key is configured.
var ErrNoAPIKey = errors.New("suggest: serpapi key not configured")

// SerpAPI asks Google (through SerpApi) for its "showing results for"
// spelling fix.
type SerpAPI struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

type serpResponse struct {
	Error             string `json:"error"`
	SearchInformation struct {
		SpellingFix string `json:"spelling_fix"`
	} `json:"search_information"`
}

// NewSerpAPI creates a SerpAPI speller. An empty baseURL selects the public
// endpoint; a non-positive timeout selects ten seconds.
func NewSerpAPI(apiKey, baseURL string, timeout time.Duration, logger zerolog.Logger) *SerpAPI {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultSerpAPIURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SerpAPI{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With().Str("adapter", "serpapi").Logger(),
	}
}

// Suggest returns the corrected spelling for word, or "" when the search
// engine offers none.
func (s *SerpAPI) Suggest(ctx context.Context, word string) (string, error) {
	if s.apiKey == "" {
		return "", ErrNoAPIKey
	}
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", word)
	params.Set("hl", "en")
	params.Set("gl", "us")
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("serpapi: create request: %w", err)
	}
	s.log.Debug().Str("word", word).Msg("serpapi request")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("serpapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("serpapi: read body: %w", err)
	}

	var payload serpResponse
	decodeErr := json.Unmarshal(body, &payload)
	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && payload.Error != "" {
			return "", fmt.Errorf("serpapi: status %d: %s", resp.StatusCode, payload.Error)
		}
		return "", fmt.Errorf("serpapi: unexpected status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("serpapi: decode json: %w", decodeErr)
	}
	if payload.Error != "" {
		return "", fmt.Errorf("serpapi: %s", payload.Error)
	}

	fix := strings.TrimSpace(payload.SearchInformation.SpellingFix)
	s.log.Debug().Str("word", word).Str("spelling_fix", fix).Msg("serpapi response")
	return fix, nil
}
