package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/sitelens/internal/backend"
	"github.com/five82/sitelens/internal/grid"
)

type fakeBackend struct {
	mu      sync.Mutex
	calls   []backend.ExportRequest
	err     error
	started chan struct{}
	unblock chan struct{}
}

func (f *fakeBackend) Export(ctx context.Context, req backend.ExportRequest) (backend.ExportResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.unblock != nil {
		<-f.unblock
	}
	if f.err != nil {
		return backend.ExportResult{}, f.err
	}
	return backend.ExportResult{Path: req.Path, Bytes: int64(len(req.CSV))}, nil
}

func (f *fakeBackend) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type dialog struct {
	path string
	err  error
}

func (d dialog) Choose(context.Context, string) (string, error) { return d.path, d.err }

func columns() []grid.ColumnDef {
	return []grid.ColumnDef{
		{ID: "url", Title: "URL"},
		{ID: "status", Title: "Status"},
	}
}

func rowsN(n int) []grid.Row {
	items := make([]map[string]any, n)
	for i := range items {
		items[i] = map[string]any{"url": fmt.Sprintf("https://example.com/%d", i), "status": float64(200)}
	}
	return grid.RowsFromMaps(items, "url")
}

func quietAdapter(b backend.Exporter) *Adapter {
	return NewAdapter(b, Options{
		Logger: log.New(io.Discard),
		Now:    func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) },
	})
}

func TestExport_NoDataMakesNoCall(t *testing.T) {
	fb := &fakeBackend{}
	a := quietAdapter(fb)

	res, err := a.Export(context.Background(), nil, columns(), dialog{path: "out.xlsx"})
	if !errors.Is(err, ErrNoData) || res.Status != StatusNoData {
		t.Fatalf("Export = %v, %v; want no data", res.Status, err)
	}
	if fb.count() != 0 {
		t.Fatalf("backend calls = %d, want 0", fb.count())
	}
	if a.Busy() {
		t.Fatalf("adapter busy after no-data export")
	}
}

func TestExport_SingleFlight(t *testing.T) {
	fb := &fakeBackend{started: make(chan struct{}), unblock: make(chan struct{})}
	a := quietAdapter(fb)
	rows := rowsN(5000)

	job, err := a.Begin(rows, columns())
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	done := make(chan error, 1)
	go func() {
		_, err := job.Run(context.Background(), "/tmp/crawl.csv")
		done <- err
	}()
	<-fb.started

	if _, err := a.Begin(rows, columns()); !errors.Is(err, ErrBusy) {
		t.Fatalf("second Begin error = %v, want ErrBusy", err)
	}
	res, err := a.Export(context.Background(), rows, columns(), dialog{path: "/tmp/other.csv"})
	if res.Status != StatusBusy || !errors.Is(err, ErrBusy) {
		t.Fatalf("second Export = %v, %v; want busy", res.Status, err)
	}

	close(fb.unblock)
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if fb.count() != 1 {
		t.Fatalf("backend calls = %d, want 1", fb.count())
	}
	if a.Busy() {
		t.Fatalf("adapter still busy after run")
	}
}

func TestExport_FormatRouting(t *testing.T) {
	tests := []struct {
		rows int
		want Format
	}{
		{1, FormatXLSX},
		{999, FormatXLSX},
		{1000, FormatCSV},
		{5000, FormatCSV},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.rows), func(t *testing.T) {
			fb := &fakeBackend{}
			a := quietAdapter(fb)
			res, err := a.Export(context.Background(), rowsN(tt.rows), columns(), dialog{path: "out"})
			if err != nil {
				t.Fatalf("Export returned error: %v", err)
			}
			if res.Format != tt.want || res.Rows != tt.rows {
				t.Fatalf("result = %+v, want format %s", res, tt.want)
			}
			req := fb.calls[0]
			if req.Format != string(tt.want) {
				t.Fatalf("request format = %q", req.Format)
			}
			if tt.want == FormatCSV {
				if req.Rows != nil || !strings.HasPrefix(req.CSV, "URL,Status\n") {
					t.Fatalf("csv request carried rows or wrong header (%d bytes)", len(req.CSV))
				}
				if got := strings.Count(req.CSV, "\n"); got != tt.rows+1 {
					t.Fatalf("csv lines = %d, want %d", got, tt.rows+1)
				}
			} else if len(req.Rows) != tt.rows || req.CSV != "" {
				t.Fatalf("xlsx request rows = %d, csv %q", len(req.Rows), req.CSV)
			}
		})
	}
}

func TestExport_CancelledDialogIsSilent(t *testing.T) {
	fb := &fakeBackend{}
	a := quietAdapter(fb)

	for _, d := range []dialog{{err: ErrCancelled}, {path: "  "}} {
		res, err := a.Export(context.Background(), rowsN(3), columns(), d)
		if err != nil || res.Status != StatusCancelled {
			t.Fatalf("Export = %v, %v; want silent cancel", res.Status, err)
		}
	}
	if fb.count() != 0 || a.Busy() {
		t.Fatalf("calls = %d busy = %v after cancel", fb.count(), a.Busy())
	}
}

func TestExport_BackendFailureReleasesBusy(t *testing.T) {
	fb := &fakeBackend{err: errors.New("disk full")}
	a := quietAdapter(fb)

	res, err := a.Export(context.Background(), rowsN(2), columns(), dialog{path: "out.xlsx"})
	if err == nil || !strings.Contains(err.Error(), "disk full") || res.Status != StatusFailed {
		t.Fatalf("Export = %v, %v; want failure", res.Status, err)
	}
	if a.Busy() {
		t.Fatalf("busy flag not released after failure")
	}
	if _, err := a.Begin(rowsN(1), columns()); err != nil {
		t.Fatalf("Begin after failure returned %v", err)
	}
}

func TestJob_CancelThenRun(t *testing.T) {
	fb := &fakeBackend{}
	a := quietAdapter(fb)
	job, err := a.Begin(rowsN(1), columns())
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	if job.SuggestedName() != "crawl-20260301-093000.xlsx" {
		t.Fatalf("SuggestedName = %q", job.SuggestedName())
	}
	job.Cancel()
	job.Cancel()
	if a.Busy() {
		t.Fatalf("busy after cancel")
	}
	if _, err := job.Run(context.Background(), "x.xlsx"); !errors.Is(err, ErrCancelled) {
		t.Fatalf("Run after Cancel error = %v", err)
	}
	if fb.count() != 0 {
		t.Fatalf("cancelled job reached the backend")
	}
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    Scope
		wantErr bool
	}{
		{"", ScopeAll, false},
		{"ALL", ScopeAll, false},
		{" filtered ", ScopeFiltered, false},
		{"visible", ScopeFiltered, false},
		{"some", ScopeAll, true},
	}
	for _, tt := range tests {
		got, err := ParseScope(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("ParseScope(%q) = %v, %v", tt.in, got, err)
		}
	}
	if ScopeAll.Toggle() != ScopeFiltered || ScopeFiltered.Toggle() != ScopeAll {
		t.Fatalf("Toggle did not flip scope")
	}
}

func TestEncodeCSV_Quotes(t *testing.T) {
	got, err := EncodeCSV([]string{"url", "title"}, [][]string{{"https://a", `Say "hi", ok`}})
	if err != nil {
		t.Fatalf("EncodeCSV returned error: %v", err)
	}
	want := "url,title\nhttps://a,\"Say \"\"hi\"\", ok\"\n"
	if got != want {
		t.Fatalf("EncodeCSV = %q, want %q", got, want)
	}
}
