// Package state provides thread-safe storage for crawl rows shared between
// the row loaders and the UI.
//
// # Overview
//
// The poller (backend mode) or the file watcher (results file mode) writes
// rows into a Store. The UI reads a Snapshot whenever it is told that new
// rows arrived.
//
//	Producer (poller/watcher):      Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ FetchRows()    │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	└────────────────┘  (mutex)   └─────────────────┘
//
// # Update Semantics
//
// A successful update replaces the rows and bumps Generation. The grid uses
// the generation to invalidate its filter cache. A failed update keeps the
// last good rows and records LastError; two failures in a row mark the
// snapshot offline.
//
// # Copying
//
// Snapshot copies the row slice, not the row maps. Rows are never mutated
// after they are loaded.
//
// The zero Store is ready to use.
package state
