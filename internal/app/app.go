package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/sitelens/internal/backend"
	"github.com/five82/sitelens/internal/config"
	"github.com/five82/sitelens/internal/export"
	"github.com/five82/sitelens/internal/logging"
	"github.com/five82/sitelens/internal/prefs"
	"github.com/five82/sitelens/internal/source"
	"github.com/five82/sitelens/internal/state"
	"github.com/five82/sitelens/internal/ui"
)

// ErrNoSource is returned when neither a results file nor a backend is set.
var ErrNoSource = errors.New("no row source: set results_file or backend, or pass --rows or --backend")

// initialFetchTimeout bounds the first backend poll before the UI starts.
const initialFetchTimeout = 3 * time.Second

// Options configure the sitelens application. Non-empty fields override the
// config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/sitelens/prefs.toml
	RowsFile   string
	Backend    string
	PollEvery  int // seconds; zero uses config
	Debug      bool
}

// Run boots the sitelens TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel, Debug: opts.Debug})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()
	logger.Info("sitelens starting", "backend", cfg.Backend, "results", cfg.ResultsFile)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("load prefs failed", "path", prefsPath, "err", err)
	}

	store := &state.Store{}
	src, err := startSource(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	adapter := export.NewAdapter(src.exporter, export.Options{
		Threshold: cfg.CSVThreshold,
		Logger:    logger,
	})

	err = ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		Exporter:  adapter,
		Logger:    logger,
		LogPath:   cfg.LogFile,
		Reload:    src.reload,
	})
	logger.Info("sitelens stopped", "err", err)
	return err
}

func applyOverrides(cfg *config.Config, opts Options) error {
	if rows := strings.TrimSpace(opts.RowsFile); rows != "" {
		path, err := config.ExpandPath(rows)
		if err != nil {
			return fmt.Errorf("resolve rows file: %w", err)
		}
		cfg.ResultsFile = path
	}
	if addr := strings.TrimSpace(opts.Backend); addr != "" {
		cfg.Backend = addr
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	return nil
}

// rowSource is the running loader plus the matching export backend.
type rowSource struct {
	reload   func() error
	exporter backend.Exporter
}

// startSource loads rows once and keeps them fresh: a results file is
// watched, a backend is polled. Exports go to the backend when one is set
// and are written locally otherwise.
func startSource(ctx context.Context, cfg config.Config, store *state.Store, logger *log.Logger) (rowSource, error) {
	var src rowSource
	src.exporter = export.LocalBackend{Dir: cfg.ExportDir}

	var client *backend.Client
	if cfg.Backend != "" {
		var err error
		client, err = backend.NewClient(cfg.Backend)
		if err != nil {
			return src, fmt.Errorf("init backend client: %w", err)
		}
		src.exporter = client
	}

	switch {
	case cfg.ResultsFile != "":
		path := cfg.ResultsFile
		store.SetSource(path)
		_ = source.Refresh(store, path, logger)
		if err := source.Watch(ctx, store, path, logger); err != nil {
			return src, err
		}
		src.reload = func() error { return source.Refresh(store, path, logger) }

	case client != nil:
		store.SetSource(client.BaseURL())
		initCtx, cancel := context.WithTimeout(ctx, initialFetchTimeout)
		_ = refresh(initCtx, store, client, logger)
		cancel()
		StartPoller(ctx, store, client, cfg.PollInterval, logger)
		src.reload = func() error {
			reloadCtx, cancel := context.WithTimeout(ctx, initialFetchTimeout)
			defer cancel()
			return refresh(reloadCtx, store, client, logger)
		}

	default:
		return src, ErrNoSource
	}
	return src, nil
}
