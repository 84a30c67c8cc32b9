// Package backend provides an HTTP client for the crawler API.
//
// # Overview
//
// The crawler serves its results and accepts export jobs over a small JSON
// API. This package wraps those endpoints:
//
//   - GET /api/results returns {"rows": [...]}, one object per crawled URL
//   - GET /api/status returns crawl progress
//   - POST /api/export writes a spreadsheet or CSV file and returns its path
//
// # Client Usage
//
//	client, err := backend.NewClient("127.0.0.1:7710")
//	if err != nil {
//		return err
//	}
//	rows, err := client.FetchRows(ctx)
//
// An empty address falls back to 127.0.0.1:7710. Addresses without a scheme
// are treated as http.
//
// # Errors
//
// Responses with status >= 400 become a *StatusError carrying the path, the
// code and the "error" field of the body when present. Requests are never
// retried; the poller decides when to ask again.
//
// # Timeouts
//
// Reads use a 5 second timeout. Exports get two minutes since the backend
// may be building a large spreadsheet.
package backend
