// Package tmdb implements the TMDB metadata gateway: free-text search,
// genre discovery, popular listings and per-title details.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/movieshub/movieshub/internal/config"
)

var (
	ErrAPIKeyMissing = errors.New("TMDB API key is not configured")
	ErrNotFound      = errors.New("title not found")
	ErrAPIError      = errors.New("TMDB API error")
	ErrRateLimited   = errors.New("TMDB API rate limited")
)

// discoverPageSize is the number of results a merged "any type" discovery
// page is truncated to, matching a single TMDB page.
const discoverPageSize = 20

// popularPages is how many pages of popular results are combined.
const popularPages = 5

// Client is a TMDB API client.
type Client struct {
	httpClient *http.Client
	config     config.TMDBConfig
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client.
func NewClient(cfg config.TMDBConfig, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		config: cfg,
		logger: logger.With().Str("component", "tmdb").Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "tmdb"
}

// IsConfigured returns true if the API key is set.
func (c *Client) IsConfigured() bool {
	return c.config.APIKey != ""
}

// Test verifies connectivity to the TMDB API by making a configuration request.
func (c *Client) Test(ctx context.Context) error {
	if !c.IsConfigured() {
		return ErrAPIKeyMissing
	}

	endpoint := fmt.Sprintf("%s/configuration", c.config.BaseURL)
	params := url.Values{}
	params.Set("api_key", c.config.APIKey)

	var result struct {
		Images struct {
			BaseURL string `json:"base_url"`
		} `json:"images"`
	}

	return c.doRequest(ctx, endpoint, params, &result)
}

// Search searches for movies, series or both by free-text query.
// An empty result list means "not found" and is not an error.
func (c *Client) Search(ctx context.Context, query string, mediaType MediaType) ([]Item, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	var path string
	switch mediaType {
	case MediaTypeMovie:
		path = "search/movie"
	case MediaTypeTV:
		path = "search/tv"
	default:
		path = "search/multi"
	}

	endpoint := fmt.Sprintf("%s/%s", c.config.BaseURL, path)
	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	params.Set("query", query)
	params.Set("include_adult", "false")

	var response SearchResponse
	if err := c.doRequest(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}

	results := c.tagMediaType(response.Results, mediaType)

	c.logger.Debug().
		Str("query", query).
		Str("mediaType", string(mediaType)).
		Int("results", len(results)).
		Msg("Search completed")

	return results, nil
}

// DiscoverByGenre lists items for a genre, ordered by popularity. For
// MediaTypeMulti the movie and series discovery requests run concurrently
// and the merged result is sorted by descending popularity and truncated to
// one page. If either sub-request fails, the whole call fails.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int, mediaType MediaType, page int) ([]Item, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}
	if page <= 0 {
		page = 1
	}

	if mediaType != MediaTypeMulti {
		return c.discoverOne(ctx, genreID, mediaType, page)
	}

	var (
		wg     sync.WaitGroup
		movies []Item
		series []Item
		movErr error
		serErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		movies, movErr = c.discoverOne(ctx, genreID, MediaTypeMovie, page)
	}()
	go func() {
		defer wg.Done()
		series, serErr = c.discoverOne(ctx, genreID, MediaTypeTV, page)
	}()
	wg.Wait()

	if movErr != nil {
		return nil, movErr
	}
	if serErr != nil {
		return nil, serErr
	}

	merged := make([]Item, 0, len(movies)+len(series))
	merged = append(merged, movies...)
	merged = append(merged, series...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Popularity > merged[j].Popularity
	})
	if len(merged) > discoverPageSize {
		merged = merged[:discoverPageSize]
	}

	c.logger.Debug().
		Int("genreID", genreID).
		Int("page", page).
		Int("results", len(merged)).
		Msg("Merged genre discovery completed")

	return merged, nil
}

func (c *Client) discoverOne(ctx context.Context, genreID int, mediaType MediaType, page int) ([]Item, error) {
	endpoint := fmt.Sprintf("%s/discover/%s", c.config.BaseURL, mediaType)
	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")

	var response SearchResponse
	if err := c.doRequest(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}

	return c.tagMediaType(response.Results, mediaType), nil
}

// Popular returns the first 100 popular movies or series, combining five
// popularity pages fetched concurrently.
func (c *Client) Popular(ctx context.Context, mediaType MediaType) ([]Item, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}
	if mediaType != MediaTypeMovie && mediaType != MediaTypeTV {
		return nil, fmt.Errorf("%w: popular requires movie or tv", ErrAPIError)
	}

	pages := make([][]Item, popularPages)
	errs := make([]error, popularPages)

	var wg sync.WaitGroup
	for i := 0; i < popularPages; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			endpoint := fmt.Sprintf("%s/%s/popular", c.config.BaseURL, mediaType)
			params := url.Values{}
			params.Set("api_key", c.config.APIKey)
			params.Set("page", strconv.Itoa(i+1))

			var response SearchResponse
			if err := c.doRequest(ctx, endpoint, params, &response); err != nil {
				errs[i] = err
				return
			}
			pages[i] = c.tagMediaType(response.Results, mediaType)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var all []Item
	for _, page := range pages {
		all = append(all, page...)
	}
	if len(all) > 100 {
		all = all[:100]
	}

	c.logger.Debug().
		Str("mediaType", string(mediaType)).
		Int("results", len(all)).
		Msg("Popular listing completed")

	return all, nil
}

// Details fetches the extended record for a TMDB id with credits appended.
// The movie namespace is tried first; on failure the TV namespace is tried.
// The call fails only if both lookups fail.
func (c *Client) Details(ctx context.Context, tmdbID int) (*Details, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	details, movieErr := c.detailsFor(ctx, MediaTypeMovie, tmdbID)
	if movieErr == nil {
		details.MediaType = "movie"
		return details, nil
	}

	details, tvErr := c.detailsFor(ctx, MediaTypeTV, tmdbID)
	if tvErr != nil {
		c.logger.Debug().
			Int("id", tmdbID).
			AnErr("movieErr", movieErr).
			AnErr("tvErr", tvErr).
			Msg("Details lookup failed for both namespaces")
		return nil, movieErr
	}
	details.MediaType = "tv"

	return details, nil
}

func (c *Client) detailsFor(ctx context.Context, mediaType MediaType, tmdbID int) (*Details, error) {
	endpoint := fmt.Sprintf("%s/%s/%d", c.config.BaseURL, mediaType, tmdbID)
	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	params.Set("append_to_response", "credits")

	var details Details
	if err := c.doRequest(ctx, endpoint, params, &details); err != nil {
		return nil, err
	}

	// Surface the top-billed cast on the record itself.
	if details.Credits != nil {
		cast := details.Credits.Cast
		if len(cast) > 20 {
			cast = cast[:20]
		}
		details.Cast = cast
	}

	return &details, nil
}

// ImageURL returns a full image URL for a given path and size.
// Size options: "w92", "w154", "w185", "w342", "w500", "w780", "original".
func (c *Client) ImageURL(path string, size string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s%s", c.config.ImageBaseURL, size, path)
}

// tagMediaType stamps each result with its media type so downstream
// consumers do not have to re-derive it. Multi-search results already carry
// their own media_type and are left untouched.
func (c *Client) tagMediaType(items []Item, mediaType MediaType) []Item {
	if mediaType == MediaTypeMulti {
		return items
	}
	for i := range items {
		items[i].MediaType = string(mediaType)
	}
	return items
}

// doRequest performs an HTTP GET request and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	reqURL := endpoint
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("HTTP request failed")
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("message", errResp.StatusMessage).
				Msg("TMDB API error")
		}

		switch resp.StatusCode {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: invalid API key", ErrAPIError)
		case http.StatusTooManyRequests:
			return ErrRateLimited
		default:
			return fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
