package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/reelstack/reelstack/internal/config"
	"github.com/reelstack/reelstack/internal/metrics"
)

var (
	ErrAPIKeyMissing = errors.New("TMDB API key is not configured")
	ErrNotFound      = errors.New("record not found")
	ErrAPIError      = errors.New("TMDB API error")
	ErrRateLimited   = errors.New("TMDB API rate limited")
)

// StatusError carries a non-success upstream HTTP status so handlers can
// forward it to the caller.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("upstream status %d", e.Code)
}

// Client is a TMDB API client.
type Client struct {
	httpClient *http.Client
	config     config.TMDBConfig
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client.
func NewClient(cfg config.TMDBConfig, m *metrics.Metrics, logger zerolog.Logger) *Client {
	if m == nil {
		m = metrics.Nop()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		config: cfg,
		// TMDB allows ~50 req/s per key; stay well below it.
		limiter: rate.NewLimiter(rate.Limit(20), 10),
		metrics: m,
		logger:  logger.With().Str("component", "tmdb").Logger(),
	}
}

// IsConfigured returns true if the API key is set.
func (c *Client) IsConfigured() bool {
	return c.config.APIKey != ""
}

// SearchMovies searches for movies by query with optional year filter.
func (c *Client) SearchMovies(ctx context.Context, query string, year int) (*SearchMoviesResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	if year > 0 {
		params.Set("year", fmt.Sprintf("%d", year))
	}

	var response SearchMoviesResponse
	if err := c.get(ctx, "/search/movie", params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SearchTV searches for TV series by query with optional first-air-year filter.
func (c *Client) SearchTV(ctx context.Context, query string, year int) (*SearchTVResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	if year > 0 {
		params.Set("first_air_date_year", fmt.Sprintf("%d", year))
	}

	var response SearchTVResponse
	if err := c.get(ctx, "/search/tv", params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SearchPeople searches for people by query.
func (c *Client) SearchPeople(ctx context.Context, query string) (*SearchPeopleResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")

	var response SearchPeopleResponse
	if err := c.get(ctx, "/search/person", params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SearchKeywords resolves a free-text keyword to provider keyword records.
func (c *Client) SearchKeywords(ctx context.Context, keyword string) (*SearchKeywordsResponse, error) {
	params := url.Values{}
	params.Set("query", keyword)

	var response SearchKeywordsResponse
	if err := c.get(ctx, "/search/keyword", params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// DiscoverMovies runs a movie discover query with pre-validated parameters.
func (c *Client) DiscoverMovies(ctx context.Context, params url.Values) (*SearchMoviesResponse, error) {
	var response SearchMoviesResponse
	if err := c.get(ctx, "/discover/movie", params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// DiscoverTV runs a TV discover query with pre-validated parameters.
func (c *Client) DiscoverTV(ctx context.Context, params url.Values) (*SearchTVResponse, error) {
	var response SearchTVResponse
	if err := c.get(ctx, "/discover/tv", params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetTVDetails gets TV series detail by id, used for episode-count hydration.
func (c *Client) GetTVDetails(ctx context.Context, id int) (*TVDetails, error) {
	var details TVDetails
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", id), url.Values{}, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// GetPerson gets person detail by id with combined credits appended.
func (c *Client) GetPerson(ctx context.Context, id int) (*PersonDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "combined_credits")

	var details PersonDetails
	if err := c.get(ctx, fmt.Sprintf("/person/%d", id), params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// GetImageURL returns a full image URL for a given path and size.
// Size options: "w92", "w154", "w185", "w342", "w500", "w780", "original"
func (c *Client) GetImageURL(path string, size string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s%s", c.config.ImageBaseURL, size, path)
}

// get performs a rate-limited GET against the provider, retrying only
// rate-limit responses. All other failures surface immediately; the caller's
// context bounds total time including retries.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if !c.IsConfigured() {
		return ErrAPIKeyMissing
	}

	return retry.Do(
		func() error {
			return c.doRequest(ctx, endpoint, params, result)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, ErrRateLimited)
		}),
		retry.LastErrorOnly(true),
	)
}

// doRequest performs one HTTP GET request and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	query := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	query.Set("api_key", c.config.APIKey)
	if c.config.Language != "" && !query.Has("language") {
		query.Set("language", c.config.Language)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.config.BaseURL, endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("endpoint", endpoint).
				Str("message", errResp.StatusMessage).
				Msg("TMDB API error")
		}

		switch resp.StatusCode {
		case http.StatusNotFound:
			c.metrics.ProviderRequests.WithLabelValues(endpoint, "not_found").Inc()
			return fmt.Errorf("%w: %w", &StatusError{Code: resp.StatusCode, Message: errResp.StatusMessage}, ErrNotFound)
		case http.StatusTooManyRequests:
			c.metrics.ProviderRequests.WithLabelValues(endpoint, "rate_limited").Inc()
			return ErrRateLimited
		default:
			c.metrics.ProviderRequests.WithLabelValues(endpoint, "upstream_error").Inc()
			return &StatusError{Code: resp.StatusCode, Message: errResp.StatusMessage}
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "decode_error").Inc()
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.metrics.ProviderRequests.WithLabelValues(endpoint, "ok").Inc()
	return nil
}
