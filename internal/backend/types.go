package backend

import (
	"fmt"
	"time"
)

// ResultsResponse wraps GET /api/results.
type ResultsResponse struct {
	Rows []map[string]any `json:"rows"`
}

// CrawlStatus summarizes crawler progress from GET /api/status.
type CrawlStatus struct {
	Running   bool   `json:"running"`
	StartURL  string `json:"start_url"`
	Crawled   int    `json:"crawled"`
	Queued    int    `json:"queued"`
	Errors    int    `json:"errors"`
	StartedAt string `json:"started_at"`
}

// ParsedStartedAt returns StartedAt as time.Time, or the zero time.
func (s CrawlStatus) ParsedStartedAt() time.Time {
	if s.StartedAt == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.StartedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ExportRequest is the body of POST /api/export. Exactly one of Rows or CSV
// carries the data.
type ExportRequest struct {
	Format  string     `json:"format"`
	Path    string     `json:"path"`
	Columns []string   `json:"columns"`
	Titles  []string   `json:"titles,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
	CSV     string     `json:"csv,omitempty"`
}

// ExportResult reports where the backend wrote the file.
type ExportResult struct {
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}

// StatusError is returned for responses with status >= 400.
type StatusError struct {
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}
