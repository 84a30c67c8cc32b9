package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/sitelens/internal/export"
	"github.com/five82/sitelens/internal/grid"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend != "" || cfg.ResultsFile != "" {
		t.Fatalf("source = %q/%q, want both empty", cfg.Backend, cfg.ResultsFile)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.Debounce != 300*time.Millisecond || cfg.Overscan != 18 || cfg.CSVThreshold != 1000 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.ExportScope != export.ScopeAll || cfg.KeyField != "url" {
		t.Fatalf("scope/key = %q/%q", cfg.ExportScope, cfg.KeyField)
	}
	if len(cfg.Columns) != len(DefaultColumns()) {
		t.Fatalf("Columns = %d, want defaults", len(cfg.Columns))
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
backend = "  10.0.0.5:7710  "
results_file = "~/crawls/site.json"
log_level = " DEBUG "
poll_seconds = 2
debounce_ms = 150
overscan = 4
truncate = 80
min_pane = 3
csv_threshold = 250
export_scope = "filtered"
export_dir = "~/exports"
key_field = "address"

[[columns]]
id = "address"
title = "Address"
width = 40
min_width = 10
flex = true

[[columns]]
id = "code"
width = 1
min_width = 4
align = "Right"

[[columns]]
id = ""
title = "dropped"

[[columns]]
id = "address"
title = "duplicate"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend != "10.0.0.5:7710" || cfg.LogLevel != "debug" || cfg.KeyField != "address" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.ResultsFile != filepath.Join(home, "crawls/site.json") || cfg.ExportDir != filepath.Join(home, "exports") {
		t.Fatalf("paths = %q %q", cfg.ResultsFile, cfg.ExportDir)
	}
	if cfg.PollInterval != 2*time.Second || cfg.Debounce != 150*time.Millisecond {
		t.Fatalf("durations = %v %v", cfg.PollInterval, cfg.Debounce)
	}
	if cfg.Overscan != 4 || cfg.Truncate != 80 || cfg.MinPane != 3 || cfg.CSVThreshold != 250 || cfg.RowHeight != 1 {
		t.Fatalf("ints = %+v", cfg)
	}
	if cfg.ExportScope != export.ScopeFiltered {
		t.Fatalf("ExportScope = %q", cfg.ExportScope)
	}

	want := []grid.ColumnDef{
		{ID: "address", Title: "Address", MinWidth: 10, DefaultWidth: 40, Flex: true},
		{ID: "code", Title: "code", MinWidth: 4, DefaultWidth: 4, DefaultAlign: grid.AlignRight},
	}
	if diff := cmp.Diff(want, cfg.GridColumns(), cmp.Comparer(func(a, b func(grid.Row) any) bool {
		return a == nil && b == nil
	})); diff != "" {
		t.Fatalf("GridColumns mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
backend = "   "
log_file = ""
poll_seconds = 0
overscan = -3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	def := Default()
	if cfg.LogFile != def.LogFile || cfg.PollInterval != def.PollInterval || cfg.Overscan != def.Overscan {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, `backend = [`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidScopeFails(t *testing.T) {
	_, err := Load(writeConfig(t, `export_scope = "some"`))
	if err == nil || !strings.Contains(err.Error(), "export scope") {
		t.Fatalf("Load error = %v, want export scope error", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if want := filepath.Join(home, "a/b"); got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
