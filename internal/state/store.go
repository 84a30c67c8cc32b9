package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/sitelens/internal/backend"
)

// Snapshot represents the latest crawl data available to the UI.
type Snapshot struct {
	Rows                []map[string]any
	Generation          uint64 // bumped on every successful row update
	Source              string
	Status              backend.CrawlStatus
	HasStatus           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the row source has failed on consecutive loads.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetSource records a description of where rows come from.
func (s *Store) SetSource(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Source = source
}

// Update replaces the stored rows. When err is non-nil the previous rows are
// kept and the error is recorded. A nil status leaves the previous status in
// place.
func (s *Store) Update(rows []map[string]any, status *backend.CrawlStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Rows = cloneRows(rows)
	s.snapshot.Generation++
	if status != nil {
		s.snapshot.Status = *status
		s.snapshot.HasStatus = true
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot. Row maps are shared and
// must be treated as read-only.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Rows = cloneRows(s.snapshot.Rows)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneRows(rows []map[string]any) []map[string]any {
	if len(rows) == 0 {
		return nil
	}
	dup := make([]map[string]any, len(rows))
	copy(dup, rows)
	return dup
}
