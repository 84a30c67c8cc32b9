package ui

import "time"

// Screen rows outside the workspace.
const (
	headerLines = 1
	footerLines = 1
)

// Layout thresholds.
const (
	// LayoutCompactWidth is the width below which the header drops detail.
	LayoutCompactWidth = 100
)

// Timing constants.
const (
	// DefaultUIInterval is how often the store is checked for new rows.
	DefaultUIInterval = 500 * time.Millisecond

	// ToastDuration is how long a notice stays in the footer.
	ToastDuration = 4 * time.Second

	// ExportTimeout bounds a single export call.
	ExportTimeout = 3 * time.Minute
)

// LogPanelLines is the number of log lines read for the log panel.
const LogPanelLines = 500
