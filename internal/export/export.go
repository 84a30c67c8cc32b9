package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/sitelens/internal/backend"
	"github.com/five82/sitelens/internal/grid"
)

var (
	ErrNoData    = errors.New("no data to export")
	ErrBusy      = errors.New("an export is already running")
	ErrCancelled = errors.New("export cancelled")
)

// DefaultThreshold is the row count at which exports switch to local CSV.
const DefaultThreshold = 1000

// Format names the file type sent to the backend.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Scope chooses which rows an export covers.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeFiltered Scope = "filtered"
)

// ParseScope converts a config value. Blank means ScopeAll.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ScopeAll, nil
	case "filtered", "visible":
		return ScopeFiltered, nil
	default:
		return ScopeAll, fmt.Errorf("unknown export scope %q", s)
	}
}

// Toggle flips between the two scopes.
func (s Scope) Toggle() Scope {
	if s == ScopeFiltered {
		return ScopeAll
	}
	return ScopeFiltered
}

// Status is the outcome of an export.
type Status int

const (
	StatusDone Status = iota
	StatusNoData
	StatusCancelled
	StatusBusy
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusNoData:
		return "no data"
	case StatusCancelled:
		return "cancelled"
	case StatusBusy:
		return "busy"
	default:
		return "failed"
	}
}

// Result reports a finished export.
type Result struct {
	Status Status
	Format Format
	Path   string
	Bytes  int64
	Rows   int
}

// SaveDialog asks the user where to write the file. Returning ErrCancelled
// aborts the export silently.
type SaveDialog interface {
	Choose(ctx context.Context, suggested string) (string, error)
}

// Options configures an Adapter.
type Options struct {
	Threshold int
	Logger    *log.Logger
	Now       func() time.Time
}

// Adapter serializes rows and hands them to a backend. At most one job is
// open at a time.
type Adapter struct {
	backend   backend.Exporter
	threshold int
	logger    *log.Logger
	now       func() time.Time
	busy      atomic.Bool
}

// NewAdapter returns an Adapter writing through b.
func NewAdapter(b backend.Exporter, opts Options) *Adapter {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Adapter{backend: b, threshold: opts.Threshold, logger: opts.Logger, now: opts.Now}
}

// Busy reports whether a job is open.
func (a *Adapter) Busy() bool { return a.busy.Load() }

// FormatFor returns the format used for n rows.
func (a *Adapter) FormatFor(n int) Format {
	if n >= a.threshold {
		return FormatCSV
	}
	return FormatXLSX
}

// Begin snapshots rows into a job and marks the adapter busy. The caller
// must finish the job with Run or Cancel.
func (a *Adapter) Begin(rows []grid.Row, columns []grid.ColumnDef) (*Job, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	if !a.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	ids := make([]string, len(columns))
	header := make([]string, len(columns))
	for i, c := range columns {
		ids[i] = c.ID
		header[i] = c.Title
		if header[i] == "" {
			header[i] = c.ID
		}
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		line := make([]string, len(columns))
		for i, c := range columns {
			line[i] = grid.CellText(c, row)
		}
		cells[r] = line
	}

	return &Job{
		adapter: a,
		format:  a.FormatFor(len(rows)),
		ids:     ids,
		header:  header,
		cells:   cells,
		created: a.now(),
	}, nil
}

// Job is one open export.
type Job struct {
	adapter *Adapter
	format  Format
	ids     []string
	header  []string
	cells   [][]string
	created time.Time
	done    atomic.Bool
}

// Format returns the format chosen for the job.
func (j *Job) Format() Format { return j.format }

// Rows returns the number of rows in the job.
func (j *Job) Rows() int { return len(j.cells) }

// SuggestedName returns a default file name for the save prompt.
func (j *Job) SuggestedName() string {
	return fmt.Sprintf("crawl-%s.%s", j.created.Format("20060102-150405"), j.format)
}

// Run sends the job to the backend with a single call. The adapter is
// released whatever the outcome.
func (j *Job) Run(ctx context.Context, path string) (Result, error) {
	defer j.release()

	res := Result{Format: j.format, Rows: len(j.cells)}
	path = strings.TrimSpace(path)
	if path == "" {
		res.Status = StatusCancelled
		return res, ErrCancelled
	}
	if j.done.Load() {
		res.Status = StatusCancelled
		return res, ErrCancelled
	}

	req := backend.ExportRequest{Format: string(j.format), Path: path, Columns: j.ids, Titles: j.header}
	if j.format == FormatCSV {
		data, err := EncodeCSV(j.header, j.cells)
		if err != nil {
			res.Status = StatusFailed
			return res, err
		}
		req.CSV = data
	} else {
		req.Rows = j.cells
	}

	logger := j.adapter.logger
	logger.Debug("export started", "format", j.format, "rows", len(j.cells), "path", path)
	out, err := j.adapter.backend.Export(ctx, req)
	if err != nil {
		res.Status = StatusFailed
		logger.Error("export failed", "format", j.format, "path", path, "err", err)
		return res, fmt.Errorf("export %s: %w", j.format, err)
	}

	res.Status = StatusDone
	res.Path = out.Path
	if res.Path == "" {
		res.Path = path
	}
	res.Bytes = out.Bytes
	logger.Info("export finished", "format", j.format, "rows", len(j.cells), "path", res.Path, "bytes", res.Bytes)
	return res, nil
}

// Cancel abandons the job without contacting the backend.
func (j *Job) Cancel() { j.release() }

func (j *Job) release() {
	if j.done.CompareAndSwap(false, true) {
		j.adapter.busy.Store(false)
	}
}

// Export runs the whole flow for callers outside the TUI: begin, ask the
// dialog for a path, then run. No data, a busy adapter and a cancelled
// dialog are reported through Result.Status.
func (a *Adapter) Export(ctx context.Context, rows []grid.Row, columns []grid.ColumnDef, dialog SaveDialog) (Result, error) {
	job, err := a.Begin(rows, columns)
	switch {
	case errors.Is(err, ErrNoData):
		return Result{Status: StatusNoData}, err
	case errors.Is(err, ErrBusy):
		return Result{Status: StatusBusy}, err
	case err != nil:
		return Result{Status: StatusFailed}, err
	}

	path, err := dialog.Choose(ctx, job.SuggestedName())
	if err != nil {
		job.Cancel()
		if errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) {
			return Result{Status: StatusCancelled, Format: job.format, Rows: job.Rows()}, nil
		}
		return Result{Status: StatusFailed, Format: job.format, Rows: job.Rows()}, fmt.Errorf("save dialog: %w", err)
	}
	res, err := job.Run(ctx, path)
	if errors.Is(err, ErrCancelled) {
		return res, nil
	}
	return res, err
}
