package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RowFetcher defines the interface for fetching crawl results from the
// backend. It is implemented by *Client and can be replaced in tests.
type RowFetcher interface {
	FetchRows(ctx context.Context) ([]map[string]any, error)
	FetchStatus(ctx context.Context) (*CrawlStatus, error)
}

// Exporter produces an export file on the backend.
type Exporter interface {
	Export(ctx context.Context, req ExportRequest) (ExportResult, error)
}

var (
	_ RowFetcher = (*Client)(nil)
	_ Exporter   = (*Client)(nil)
)

// Client talks to the crawler HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	export    *http.Client
	userAgent string
}

const (
	defaultAddr      = "127.0.0.1:7710"
	defaultUserAgent = "sitelens/0.1"
	requestTimeout   = 5 * time.Second
	exportTimeout    = 2 * time.Minute
)

// NewClient builds a Client for the given host:port or URL.
func NewClient(addr string) (*Client, error) {
	base, err := parseBaseURL(addr)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		export:    &http.Client{Timeout: exportTimeout},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchRows retrieves the current crawl result rows.
func (c *Client) FetchRows(ctx context.Context) ([]map[string]any, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ResultsResponse
	if err := c.do(ctx, c.http, http.MethodGet, "/api/results", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Rows, nil
}

// FetchStatus retrieves the crawler progress summary.
func (c *Client) FetchStatus(ctx context.Context) (*CrawlStatus, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload CrawlStatus
	if err := c.do(ctx, c.http, http.MethodGet, "/api/status", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Export asks the backend to write an export file. The request is sent
// once and never retried.
func (c *Client) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	if c == nil {
		return ExportResult{}, fmt.Errorf("client is nil")
	}
	if req.Format == "" {
		return ExportResult{}, fmt.Errorf("export format is required")
	}
	var payload ExportResult
	if err := c.do(ctx, c.export, http.MethodPost, "/api/export", req, &payload); err != nil {
		return ExportResult{}, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Path: rel.String(), Code: resp.StatusCode, Message: readMessage(resp.Body)}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readMessage pulls a short error message out of a failed response, either
// the "error" field of a JSON body or its first line of text.
func readMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(raw)), "\n")
	return line
}

func parseBaseURL(addr string) (*url.URL, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		trimmed = defaultAddr
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse backend %q: %w", addr, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
