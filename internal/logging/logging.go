// Package logging builds the file logger shared by every sitelens component.
// The TUI owns the terminal, so nothing is written to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// TimeFormat is the timestamp layout written to the log file.
const TimeFormat = "2006/01/02 15:04:05"

// Options configures New.
type Options struct {
	Path  string
	Level string
	Debug bool // forces debug level
}

// New opens (or creates) the log file and returns a logger writing to it.
// The returned closer releases the file.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Debug {
		level = log.DebugLevel
	}

	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return Discard(), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
		Level:           level,
	})
	return logger, file, nil
}

// ParseLevel accepts debug, info, warn and error. Blank means info.
func ParseLevel(s string) (log.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return log.InfoLevel, nil
	}
	if s == "warning" {
		s = "warn"
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
