// Package tmdb is a thin client for The Movie Database API, the metadata
// provider behind the movie carousels.  Every call issues exactly one
// request: failures are reported, never retried.
package tmdb

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
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	PosterBaseURL       = "https://image.tmdb.org/t/p/w500"
	BackdropBaseURL     = "https://image.tmdb.org/t/p/w1280"
	defaultTimeout      = 10 * time.Second
	defaultUserAgent    = "cinema-ticket-dashboard/1.0"
	maxErrorBodySnippet = 8 << 10
)

// ErrMetadataFetchFailed wraps every failure to obtain metadata.  Callers
// treat it as non-fatal and render an empty list.
var ErrMetadataFetchFailed = errors.New("metadata fetch failed")

// APIError is returned when the API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "tmdb api error"
	}
	return fmt.Sprintf("tmdb api error: %s: %s", e.Status, e.Body)
}

// Client wraps HTTP access to the TMDB API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
}

// NewClient creates a client authenticating with apiKey.  If httpClient is
// nil a client with a ten second timeout is used; an empty baseURL selects
// DefaultBaseURL.
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		userAgent:  defaultUserAgent,
	}
}

// getJSON performs a single GET against path and decodes the body into out.
// Any failure is wrapped with ErrMetadataFetchFailed.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrMetadataFetchFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request %s: %w", ErrMetadataFetchFailed, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodySnippet))
		return fmt.Errorf("%w: %w", ErrMetadataFetchFailed, &APIError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Endpoint:   path,
			Body:       strings.TrimSpace(string(snippet)),
		})
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response from %s: %w", ErrMetadataFetchFailed, path, err)
	}
	return nil
}
