// Package passage is a client for a verse-by-verse passage lookup service in
// the style of the labs.bible.org API:
//
//	GET {base}?passage=John+3:16-18&type=json
//
// The service answers with one descriptor per verse of the passage, in order.
package passage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FocuswithJustin/biblein1year/internal/cache"
	"github.com/FocuswithJustin/biblein1year/internal/logging"
)

// DefaultBaseURL is the public labs.bible.org endpoint.
const DefaultBaseURL = "https://labs.bible.org/api/"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "biblein1year-fix-overlaps/1.0"
	maxResponseBytes = 4 << 20
)

// Verse is one verse descriptor returned by the service.
type Verse struct {
	Book    string `json:"bookname"`
	Chapter string `json:"chapter"`
	Verse   string `json:"verse"`
	Text    string `json:"text"`
}

// Format selects the response encoding requested from the service.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// HTTPError represents a non-success HTTP response.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %s", e.Status)
}

// IsNotFound returns true if this is a 404 error.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Client looks up passages.
type Client struct {
	httpClient *http.Client
	baseURL    string
	format     Format
	userAgent  string
	cache      *cache.TTLCache[string, []Verse]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithFormat selects JSON or XML responses.
func WithFormat(f Format) Option {
	return func(c *Client) {
		c.format = f
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithCache stores successful lookups in lc, keyed by the passage text.
// The caller owns the cache and decides when to reset it.
func WithCache(lc *cache.TTLCache[string, []Verse]) Option {
	return func(c *Client) {
		c.cache = lc
	}
}

// NewClient creates a client for the service at baseURL. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: logging.NewTransport(nil),
		},
		baseURL:   baseURL,
		format:    FormatJSON,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PassageURL returns the request URL for a passage.
func (c *Client) PassageURL(passage string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme: %s", c.baseURL)
	}
	q := u.Query()
	q.Set("passage", passage)
	q.Set("type", string(c.format))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Lookup fetches the verses of passage in order.
func (c *Client) Lookup(ctx context.Context, passage string) ([]Verse, error) {
	passage = strings.TrimSpace(passage)
	if passage == "" {
		return nil, fmt.Errorf("empty passage")
	}

	if c.cache != nil {
		if verses, ok := c.cache.Get(passage); ok {
			logging.DebugContext(ctx, "passage cache hit", "passage", passage)
			return verses, nil
		}
	}

	reqURL, err := c.PassageURL(passage)
	if err != nil {
		return nil, err
	}

	data, err := c.download(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var verses []Verse
	switch c.format {
	case FormatXML:
		verses, err = decodeXML(bytes.NewReader(data))
	default:
		verses, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s response for %q: %w", c.format, passage, err)
	}

	if c.cache != nil {
		c.cache.Set(passage, verses)
	}
	return verses, nil
}

func (c *Client) download(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}
