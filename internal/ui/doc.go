// Package ui provides the sitelens terminal interface.
//
// # Layout
//
// The screen is a one-line header, the master/detail workspace and a
// one-line footer:
//
//	sitelens  1,204/3,118 rows  facet 4xx  CRAWLING 3,118 crawled
//	┌ master grid: toolbar, sticky header, windowed rows ┐
//	├──────── divider (drag to resize) ─────────────────┤
//	│ Record │ Links │ Images │ Resources                │
//	└ detail grid for the selected row                   ┘
//	/ filter · f facet · e export · ? help · q quit
//
// # Data Flow
//
// A tick reads a Snapshot from the state store. Rows are only handed to the
// workspace when the store generation changes, so the grid keeps its filter
// cache between ticks.
//
// # Overlays
//
// Help, the column picker, the log panel and the export save prompt are
// Modals. An open modal receives every key; mouse presses are ignored but
// releases still reach the workspace so a drag always ends.
//
// # Export
//
// Pressing e begins an export job for the rows in the current scope (all or
// filtered, toggled with S) and the visible columns. The save prompt owns the
// job until it closes: enter runs it on a command goroutine, esc cancels it
// without a notice.
package ui
