package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/sitelens/internal/export"
	"github.com/five82/sitelens/internal/grid"
)

// Config holds the sitelens settings.
type Config struct {
	Backend      string
	ResultsFile  string
	LogFile      string
	LogLevel     string
	PollInterval time.Duration
	Debounce     time.Duration
	Overscan     int
	RowHeight    int
	Truncate     int
	MinPane      int
	CSVThreshold int
	ExportScope  export.Scope
	ExportDir    string
	KeyField     string
	Columns      []Column
}

// Column is one [[columns]] entry.
type Column struct {
	ID       string `toml:"id"`
	Title    string `toml:"title"`
	Width    int    `toml:"width"`
	MinWidth int    `toml:"min_width"`
	Align    string `toml:"align"`
	Flex     bool   `toml:"flex"`
}

const (
	defaultConfigPath   = "~/.config/sitelens/config.toml"
	defaultLogFile      = "~/.local/state/sitelens/sitelens.log"
	defaultLogLevel     = "info"
	defaultPollInterval = 5 * time.Second
	defaultOverscan     = grid.DefaultOverscan
	defaultRowHeight    = 1
	defaultTruncate     = 120
	defaultMinPane      = 5
	defaultKeyField     = "url"
)

// DefaultColumns are shown when the config declares none.
func DefaultColumns() []Column {
	return []Column{
		{ID: "status", Title: "Status", Width: 6, MinWidth: 4, Align: "right"},
		{ID: "url", Title: "URL", Width: 48, MinWidth: 12, Flex: true},
		{ID: "title", Title: "Title", Width: 28, MinWidth: 6},
		{ID: "content_type", Title: "Type", Width: 16, MinWidth: 4},
		{ID: "size", Title: "Size", Width: 9, MinWidth: 4, Align: "right"},
		{ID: "response_ms", Title: "Time ms", Width: 8, MinWidth: 4, Align: "right"},
		{ID: "depth", Title: "Depth", Width: 5, MinWidth: 3, Align: "right"},
	}
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogFile:      mustExpand(defaultLogFile),
		LogLevel:     defaultLogLevel,
		PollInterval: defaultPollInterval,
		Debounce:     grid.DefaultDebounce,
		Overscan:     defaultOverscan,
		RowHeight:    defaultRowHeight,
		Truncate:     defaultTruncate,
		MinPane:      defaultMinPane,
		CSVThreshold: export.DefaultThreshold,
		ExportScope:  export.ScopeAll,
		KeyField:     defaultKeyField,
		Columns:      DefaultColumns(),
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Backend      string   `toml:"backend"`
		ResultsFile  string   `toml:"results_file"`
		LogFile      string   `toml:"log_file"`
		LogLevel     string   `toml:"log_level"`
		PollSeconds  int      `toml:"poll_seconds"`
		DebounceMS   int      `toml:"debounce_ms"`
		Overscan     int      `toml:"overscan"`
		RowHeight    int      `toml:"row_height"`
		Truncate     int      `toml:"truncate"`
		MinPane      int      `toml:"min_pane"`
		CSVThreshold int      `toml:"csv_threshold"`
		ExportScope  string   `toml:"export_scope"`
		ExportDir    string   `toml:"export_dir"`
		KeyField     string   `toml:"key_field"`
		Columns      []Column `toml:"columns"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Backend = strings.TrimSpace(raw.Backend)
	if p := strings.TrimSpace(raw.ResultsFile); p != "" {
		cfg.ResultsFile = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.LogFile); p != "" {
		cfg.LogFile = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.ExportDir); p != "" {
		cfg.ExportDir = mustExpand(p)
	}
	if lvl := strings.TrimSpace(raw.LogLevel); lvl != "" {
		cfg.LogLevel = strings.ToLower(lvl)
	}
	if k := strings.TrimSpace(raw.KeyField); k != "" {
		cfg.KeyField = k
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if raw.DebounceMS > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMS) * time.Millisecond
	}
	cfg.Overscan = positiveOr(raw.Overscan, cfg.Overscan)
	cfg.RowHeight = positiveOr(raw.RowHeight, cfg.RowHeight)
	cfg.Truncate = positiveOr(raw.Truncate, cfg.Truncate)
	cfg.MinPane = positiveOr(raw.MinPane, cfg.MinPane)
	cfg.CSVThreshold = positiveOr(raw.CSVThreshold, cfg.CSVThreshold)

	scope, err := export.ParseScope(raw.ExportScope)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.ExportScope = scope

	if cols := cleanColumns(raw.Columns); len(cols) > 0 {
		cfg.Columns = cols
	}
	return cfg, nil
}

// GridColumns converts the configured columns into grid definitions.
func (c Config) GridColumns() []grid.ColumnDef {
	cols := c.Columns
	if len(cols) == 0 {
		cols = DefaultColumns()
	}
	defs := make([]grid.ColumnDef, 0, len(cols))
	for _, col := range cols {
		defs = append(defs, grid.ColumnDef{
			ID:           col.ID,
			Title:        col.Title,
			MinWidth:     col.MinWidth,
			DefaultWidth: col.Width,
			DefaultAlign: grid.ParseAlignment(strings.ToLower(strings.TrimSpace(col.Align))),
			Flex:         col.Flex,
		})
	}
	return defs
}

// cleanColumns drops entries without an id and fills missing titles.
func cleanColumns(cols []Column) []Column {
	out := make([]Column, 0, len(cols))
	seen := make(map[string]bool, len(cols))
	for _, col := range cols {
		col.ID = strings.TrimSpace(col.ID)
		if col.ID == "" || seen[col.ID] {
			continue
		}
		seen[col.ID] = true
		if strings.TrimSpace(col.Title) == "" {
			col.Title = col.ID
		}
		if col.MinWidth <= 0 {
			col.MinWidth = 3
		}
		if col.Width < col.MinWidth {
			col.Width = col.MinWidth
		}
		out = append(out, col)
	}
	return out
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) { return expandPath(path) }

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
