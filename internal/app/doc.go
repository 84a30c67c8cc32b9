// Package app is the composition root for sitelens.
//
// # Overview
//
// Run wires configuration, logging, preferences, the row source, the export
// adapter and the UI:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        Read ~/.config/sitelens/config.toml
//	       ├─────> logging.New()        File logger (the TUI owns stdout)
//	       ├─────> prefs.Load()         Theme, pane split, column layout
//	       ├─────> startSource()        Results file watcher or backend poller
//	       ├─────> export.NewAdapter()  Backend or local export writer
//	       └─────> ui.Run()             Start TUI (blocks)
//
// # Row Sources
//
// A results file (JSON or YAML) is loaded once and reloaded on every write
// through fsnotify. A crawler backend is polled at the configured interval.
// When polls fail the wait doubles up to 30 seconds and the last good rows
// stay on screen. When both are configured, rows come from the file and
// exports go to the backend.
//
// # Error Handling
//
// Configuration, logging and watcher setup errors are returned from Run.
// Row loading errors are recorded in the store and shown in the header.
package app
