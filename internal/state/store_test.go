package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/sitelens/internal/backend"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	status := &backend.CrawlStatus{Running: true, Crawled: 2}
	rows := []map[string]any{{"url": "https://a"}, {"url": "https://b"}}

	before := time.Now()
	s.Update(rows, status, nil)

	snap := s.Snapshot()
	if !snap.HasStatus || snap.Status.Crawled != 2 {
		t.Fatalf("snapshot status = %#v, want crawled=2 HasStatus=true", snap.Status)
	}
	if len(snap.Rows) != 2 || snap.Rows[0]["url"] != "https://a" {
		t.Fatalf("snapshot rows = %#v, want 2 rows", snap.Rows)
	}
	if snap.Generation != 1 || s.Snapshot().Generation != 1 {
		t.Fatalf("Generation = %d, want 1", snap.Generation)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// The returned slice is independent of the stored one.
	snap.Rows[0] = map[string]any{"url": "changed"}
	if s.Snapshot().Rows[0]["url"] != "https://a" {
		t.Fatalf("Snapshot should clone the row slice")
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update([]map[string]any{{"url": "https://a"}}, &backend.CrawlStatus{Crawled: 1}, nil)
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.Update(nil, nil, origErr)

	snap := s.Snapshot()
	if len(snap.Rows) != 1 || snap.Status.Crawled != prev.Status.Crawled {
		t.Fatalf("data changed on error: got %#v", snap)
	}
	if snap.Generation != prev.Generation {
		t.Fatalf("Generation = %d, want %d after error", snap.Generation, prev.Generation)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store
	s.SetSource("results.json")

	for i := 1; i <= 3; i++ {
		s.Update(nil, nil, errors.New("fail"))
		snap := s.Snapshot()
		if snap.ConsecutiveFailures != i {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, i)
		}
		if snap.IsOffline() != (i >= 2) {
			t.Fatalf("IsOffline() = %v with %d failures", snap.IsOffline(), i)
		}
	}

	s.Update(nil, nil, nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("success did not reset failures: %d", snap.ConsecutiveFailures)
	}
	if snap.Source != "results.json" || snap.HasStatus {
		t.Fatalf("snapshot = %+v", snap)
	}
}
