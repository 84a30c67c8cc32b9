package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/five82/sitelens/internal/logtail"
)

func TestNew_WritesParsableLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sitelens.log")

	logger, closer, err := New(Options{Path: path, Level: "info"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("rows loaded", "rows", 3)
	logger.Error("export failed", "err", "disk full")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q, want 2 (debug filtered)", lines)
	}
	first := logtail.Parse(lines[0])
	if first.Level != logtail.LevelInfo || !strings.HasPrefix(first.Message, "rows loaded") || first.Time == "" {
		t.Fatalf("first entry = %+v", first)
	}
	if logtail.Parse(lines[1]).Level != logtail.LevelError {
		t.Fatalf("second line %q did not parse as error", lines[1])
	}
}

func TestNew_DebugFlagOverridesLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitelens.log")
	logger, closer, err := New(Options{Path: path, Level: "error", Debug: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()
	if logger.GetLevel() != log.DebugLevel {
		t.Fatalf("level = %v, want debug", logger.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{" DEBUG ", log.DebugLevel, false},
		{"warning", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"loud", log.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestNew_EmptyPathDiscards(t *testing.T) {
	logger, closer, err := New(Options{})
	if err != nil || logger == nil || closer == nil {
		t.Fatalf("New = %v, %v, %v", logger, closer, err)
	}
	logger.Info("nowhere")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
