// Package grid is a windowed data grid for Bubble Tea.
//
// # Overview
//
// A Model renders a slice of Rows through a column Layout. Only the rows in
// the visible window, plus overscan, are materialized on each View:
//
//	rows ──▶ Pipeline (filter term + facet) ──▶ HeightModel ──▶ Window ──▶ View
//
// # Filtering
//
// The filter term is debounced: Debouncer keeps the raw keystrokes and
// commits the term once input has been quiet. Pipeline memoizes results per
// rows generation, term and facet, so SetRows with a fresh slice always
// re-filters.
//
// # Heights
//
// UniformHeights and VariableHeights both implement HeightModel. Per-row
// heights are keyed by row key and follow rows through filtering.
//
// # Resizing
//
// Column, row and pane drags go through a ResizeManager, which holds at most
// one session and turns pointer movement into incremental deltas. Grids that
// share a manager can never resize at the same time.
//
// # Selection
//
// Selection is a single cell that toggles off when clicked again. It follows
// its row key across SetRows and refilters, and clears when the row is gone.
package grid
