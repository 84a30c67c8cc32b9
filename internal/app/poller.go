package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/sitelens/internal/backend"
	"github.com/five82/sitelens/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that refreshes the store from
// the backend. After failures the wait doubles up to maxBackoff. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, fetcher backend.RowFetcher, interval time.Duration, logger *log.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			_ = refresh(ctx, store, fetcher, logger)
			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer.Reset(wait)
		}
	}()
}

// refresh fetches rows and the crawl status once. Rows are required; a
// status failure keeps the previous status.
func refresh(ctx context.Context, store *state.Store, fetcher backend.RowFetcher, logger *log.Logger) error {
	rows, err := fetcher.FetchRows(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		store.Update(nil, nil, err)
		logger.Warn("results poll failed", "err", err)
		return err
	}
	status, err := fetcher.FetchStatus(ctx)
	if err != nil {
		logger.Debug("status poll failed", "err", err)
		status = nil
	}
	store.Update(rows, status, nil)
	logger.Debug("results polled", "rows", len(rows))
	return nil
}

// calculateBackoff returns base doubled once per consecutive failure,
// capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
