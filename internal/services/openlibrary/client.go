package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/time/rate"

	"github.com/killallgit/book-search/internal/models"
	"github.com/killallgit/book-search/pkg/logging"
)

var (
	// ErrEmptyQuery indicates a search without any text
	ErrEmptyQuery = errors.New("search text cannot be empty")

	// ErrInvalidResponse indicates the API returned a body that does not match the SearchResult shape
	ErrInvalidResponse = errors.New("invalid response from open library")
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// HTTPError is returned for non-success responses.
type HTTPError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Http failure response for %s: %s", e.URL, e.Status)
}

// Config holds configuration for the Open Library client
type Config struct {
	BaseURL           string        // Default: https://openlibrary.org
	UserAgent         string        // Default: BookSearch/1.0
	RequestsPerMinute int           // Default: 100
	BurstSize         int           // Default: 5
	Timeout           time.Duration // Optional transport timeout, callers usually bound ctx instead
}

// Client performs single-attempt searches against the Open Library search API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	userAgent   string
	sanitizer   *bluemonday.Policy
	metrics     *clientMetrics
}

type clientMetrics struct {
	requests atomic.Int64
	errors   atomic.Int64
}

// Stats is a snapshot of client usage.
type Stats struct {
	Requests int64 `json:"requests"`
	Errors   int64 `json:"errors"`
}

// NewClient creates a new Open Library API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openlibrary.org"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "BookSearch/1.0"
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 100
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 5
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		rateLimiter: rate.NewLimiter(
			rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
			cfg.BurstSize,
		),
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		sanitizer: bluemonday.StrictPolicy(),
		metrics:   &clientMetrics{},
	}
}

// SearchURL returns the full request URL for search.
func (c *Client) SearchURL(search models.CurrentSearch) string {
	return c.baseURL + "/search.json?" + BuildQuery(search)
}

// Search issues one GET for search and decodes the result. There are no retries.
func (c *Client) Search(ctx context.Context, search models.CurrentSearch) (*models.SearchResult, error) {
	if strings.TrimSpace(search.SearchText) == "" {
		return nil, ErrEmptyQuery
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	c.metrics.requests.Add(1)
	result, err := c.do(ctx, c.SearchURL(search))
	if err != nil {
		c.metrics.errors.Add(1)
		return nil, err
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, fullURL string) (*models.SearchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		logging.For(ctx).WithField("status", resp.StatusCode).Debug("open library returned non-success status")
		return nil, &HTTPError{URL: fullURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if err := ValidateBody(body); err != nil {
		return nil, err
	}

	var result models.SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	c.clean(&result)
	return &result, nil
}

// clean strips markup from text fields and guarantees a non-nil docs slice.
func (c *Client) clean(result *models.SearchResult) {
	if result.Docs == nil {
		result.Docs = []models.Doc{}
	}
	for i := range result.Docs {
		doc := &result.Docs[i]
		doc.Title = c.plainText(doc.Title)
		doc.CoverEditionKey = c.plainText(doc.CoverEditionKey)
		for j, name := range doc.AuthorName {
			doc.AuthorName[j] = c.plainText(name)
		}
	}
}

func (c *Client) plainText(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(c.sanitizer.Sanitize(s)))
}

// Stats returns request counters for the client.
func (c *Client) Stats() Stats {
	return Stats{
		Requests: c.metrics.requests.Load(),
		Errors:   c.metrics.errors.Load(),
	}
}
