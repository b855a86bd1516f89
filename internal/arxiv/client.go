package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paperdash/content-service/internal/domain"
)

const (
	// DefaultBaseURL is the default arXiv API query endpoint.
	DefaultBaseURL = "http://export.arxiv.org/api/query"

	// DefaultTimeout is the default metadata request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is the default rate limit (3 requests per second).
	DefaultRateLimit = 3.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 3

	// DefaultMaxResults is the default maximum results per request.
	DefaultMaxResults = 25
)

// Config holds configuration for the arXiv client.
type Config struct {
	// BaseURL is the arXiv API query endpoint.
	BaseURL string

	// Timeout is the request timeout.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	BurstSize int

	// MaxResults caps the results returned per search request.
	MaxResults int
}

// applyDefaults sets default values for unset configuration fields.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.BurstSize == 0 {
		c.BurstSize = DefaultBurstSize
	}
	if c.MaxResults == 0 {
		c.MaxResults = DefaultMaxResults
	}
}

// Client queries the arXiv metadata search API.
type Client struct {
	config     Config
	httpClient *HTTPClient
}

// New creates a new arXiv client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	httpClient := NewHTTPClient(HTTPClientConfig{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		BurstSize: cfg.BurstSize,
	})

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// NewWithHTTPClient creates a new arXiv client with a custom HTTP client.
// This is useful for testing with mock servers.
func NewWithHTTPClient(cfg Config, httpClient *HTTPClient) *Client {
	cfg.applyDefaults()

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// Search queries arXiv for papers matching the query, newest submissions
// first, bounded by maxResults. Entries missing required fields are skipped
// rather than failing the whole batch.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]domain.PaperRecord, error) {
	searchURL, err := c.buildSearchURL(query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("building search URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: arxiv API returned status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	}

	// Parse the Atom XML response (limit body to 10MB).
	var feed Feed
	if err := xml.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	papers := make([]domain.PaperRecord, 0, len(feed.Entries))
	for i := range feed.Entries {
		record, ok := entryToRecord(&feed.Entries[i])
		if !ok {
			continue
		}
		papers = append(papers, record)
	}

	// The API occasionally over-returns relative to max_results.
	if len(papers) > maxResults {
		papers = papers[:maxResults]
	}

	return papers, nil
}

// buildSearchURL constructs the arXiv search API URL with the query wrapped
// in an all-fields search expression, sorted by submission date descending.
func (c *Client) buildSearchURL(query string, maxResults int) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	if maxResults < 1 || maxResults > c.config.MaxResults {
		maxResults = c.config.MaxResults
	}

	q := url.Values{}
	q.Set("search_query", "all:"+query)
	q.Set("start", "0")
	q.Set("max_results", strconv.Itoa(maxResults))
	q.Set("sortBy", "submittedDate")
	q.Set("sortOrder", "descending")

	baseURL.RawQuery = q.Encode()
	return baseURL.String(), nil
}

// entryToRecord converts an arXiv Atom entry to a PaperRecord. It returns
// false when the entry lacks the required title or link fields.
func entryToRecord(entry *Entry) (domain.PaperRecord, bool) {
	title := strings.TrimSpace(entry.Title)
	link := strings.TrimSpace(entry.ID)
	if title == "" || link == "" {
		return domain.PaperRecord{}, false
	}

	authors := make([]string, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}
		authors = append(authors, name)
	}
	if len(authors) == 0 {
		authors = []string{domain.UnknownAuthor}
	}

	return domain.PaperRecord{
		ID:          domain.RecordID(link),
		Title:       domain.NormalizeWhitespace(title),
		Summary:     domain.NormalizeWhitespace(entry.Summary),
		Authors:     authors,
		Link:        link,
		Published:   strings.TrimSpace(entry.Published),
		HasFullText: false,
	}, true
}
