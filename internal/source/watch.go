package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/five82/sitelens/internal/state"
)

// Refresh loads the file once and records the result in the store.
func Refresh(store *state.Store, path string, logger *log.Logger) error {
	rows, err := Load(path)
	if err != nil {
		store.Update(nil, nil, err)
		logger.Warn("results reload failed", "path", path, "err", err)
		return err
	}
	store.Update(rows, nil, nil)
	logger.Debug("results loaded", "path", path, "rows", len(rows))
	return nil
}

// Watch reloads path into the store whenever it is written or replaced. The
// parent directory is watched so editors that save through a rename are
// picked up. Watch returns once the watcher is running; it stops when ctx
// is cancelled.
func Watch(ctx context.Context, store *state.Store, path string, logger *log.Logger) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve results path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("watching results", "path", abs)

	go func() {
		defer func() { _ = watcher.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
					continue
				}
				_ = Refresh(store, abs, logger)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("results watcher", "err", err)
			}
		}
	}()
	return nil
}
