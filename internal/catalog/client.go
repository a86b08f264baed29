package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/watchly-backend/config"
)

// CatalogClient defines the interface for catalog API operations
type CatalogClient interface {
	Discover(ctx context.Context, mediaType MediaType, params DiscoverParams) ([]Item, error)
	Similar(ctx context.Context, mediaType MediaType, id int) ([]Item, error)
}

// Client handles communication with the external catalog service
type Client struct {
	baseURL  string
	apiKey   string
	language string
	client   *http.Client
}

// NewClient creates a catalog client with validation and defaults
func NewClient(cfg *config.CatalogConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, fmt.Errorf("catalog API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}

	language := cfg.Language
	if language == "" {
		language = "en-US"
	}

	timeout := 15 * time.Second
	if cfg.HTTPTimeout != "" {
		duration, err := time.ParseDuration(cfg.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog HTTP timeout '%s': %v", cfg.HTTPTimeout, err)
		}
		timeout = duration
	}

	return &Client{
		baseURL:  baseURL,
		apiKey:   cfg.APIKey,
		language: language,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// discoverResponse represents the paged list response of the catalog API
type discoverResponse struct {
	Page         int    `json:"page"`
	Results      []Item `json:"results"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
}

// Discover queries the discovery endpoint for the given media type
func (c *Client) Discover(ctx context.Context, mediaType MediaType, params DiscoverParams) ([]Item, error) {
	if !mediaType.Valid() {
		return nil, fmt.Errorf("invalid media type: %s", mediaType)
	}

	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)
	query.Set("include_adult", "false")

	if params.WithGenres != "" {
		query.Set("with_genres", params.WithGenres)
	}
	if params.SortBy != "" {
		query.Set("sort_by", params.SortBy)
	} else {
		query.Set("sort_by", SortPopularityDesc)
	}
	if params.VoteAverageGTE > 0 {
		query.Set("vote_average.gte", strconv.FormatFloat(params.VoteAverageGTE, 'f', 1, 64))
	}
	if params.VoteCountGTE > 0 {
		query.Set("vote_count.gte", strconv.Itoa(params.VoteCountGTE))
	}
	if params.PopularityLTE > 0 {
		query.Set("popularity.lte", strconv.FormatFloat(params.PopularityLTE, 'f', 1, 64))
	}
	if params.WithWatchProviders != "" {
		query.Set("with_watch_providers", params.WithWatchProviders)
		region := params.WatchRegion
		if region == "" {
			region = "US"
		}
		query.Set("watch_region", region)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}

	endpoint := fmt.Sprintf("%s/discover/%s?%s", c.baseURL, mediaType, query.Encode())
	return c.getItems(ctx, endpoint)
}

// Similar queries the similar-items endpoint for one title.
// The endpoint does not accept genre filters; callers post-filter when needed.
func (c *Client) Similar(ctx context.Context, mediaType MediaType, id int) ([]Item, error) {
	if !mediaType.Valid() {
		return nil, fmt.Errorf("invalid media type: %s", mediaType)
	}

	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)

	endpoint := fmt.Sprintf("%s/%s/%d/similar?%s", c.baseURL, mediaType, id, query.Encode())
	return c.getItems(ctx, endpoint)
}

func (c *Client) getItems(ctx context.Context, endpoint string) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog service error (status %d): %s", resp.StatusCode, string(body))
	}

	var listResp discoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return listResp.Results, nil
}
