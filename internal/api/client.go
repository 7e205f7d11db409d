package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mobil-koeln/railsearch/internal/cache"
	"github.com/mobil-koeln/railsearch/internal/models"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultCacheTTL = 24 * time.Hour

	// maxBodySize bounds a dataset download.
	maxBodySize = 64 << 20
)

// Cache interface for caching HTTP responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// Client fetches the station dataset over HTTP.
type Client struct {
	httpClient *http.Client
	datasetURL string
	cache      Cache
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDatasetURL overrides the dataset location.
func WithDatasetURL(u string) ClientOption {
	return func(c *Client) {
		c.datasetURL = u
	}
}

// WithCache enables caching with the provided cache implementation
func WithCache(cache Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithDefaultCache enables caching in dir (DefaultCacheDir when empty).
// A zero ttl uses the default of one day.
func WithDefaultCache(dir string, ttl time.Duration) ClientOption {
	return func(c *Client) {
		if dir == "" {
			dir = cache.DefaultCacheDir()
		}
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		fc, err := cache.NewFileCache(dir, ttl)
		if err == nil {
			c.cache = fc
		}
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		datasetURL: DefaultDatasetURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if _, err := url.ParseRequestURI(c.datasetURL); err != nil {
		return nil, fmt.Errorf("invalid dataset URL %q: %w", c.datasetURL, err)
	}

	return c, nil
}

// DatasetURL returns the URL the client fetches from.
func (c *Client) DatasetURL() string {
	return c.datasetURL
}

// FetchStations downloads and decodes the station dataset.
func (c *Client) FetchStations(ctx context.Context) ([]models.Station, error) {
	body, err := c.FetchStationsRaw(ctx)
	if err != nil {
		return nil, err
	}

	stations, err := DecodeStations(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse station dataset: %w", err)
	}
	return stations, nil
}

// FetchStationsRaw downloads the dataset and returns the raw JSON.
func (c *Client) FetchStationsRaw(ctx context.Context) (json.RawMessage, error) {
	return c.doRequest(ctx, c.datasetURL)
}

// DecodeStations decodes a JSON array of station records.
func DecodeStations(data []byte) ([]models.Station, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var stations []models.Station
	if err := json.Unmarshal(data, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// doRequest performs an HTTP GET request with optional caching
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if c.cache != nil {
		if data, ok := c.cache.Get(reqURL); ok {
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, NewAPIError(resp.StatusCode, resp.Status, extractEndpoint(reqURL))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, NewAPIErrorWithMessage(resp.StatusCode, extractEndpoint(reqURL), "dataset exceeds size limit")
	}
	if !json.Valid(body) {
		return nil, NewAPIErrorWithMessage(resp.StatusCode, extractEndpoint(reqURL), "response is not valid JSON")
	}

	// Only well-formed bodies are cached, so a bad response is retried next time.
	if c.cache != nil {
		_ = c.cache.Set(reqURL, body)
	}

	return body, nil
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.Path
}
