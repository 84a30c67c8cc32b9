package grid

// Selection is the single active (row, column) cell of a grid. Row is the
// filtered row index.
type Selection struct {
	row, col int
	set      bool
}

// Select toggles the cell off when it is already selected and replaces the
// selection otherwise. It reports whether a cell is selected afterwards.
func (s *Selection) Select(row, col int) bool {
	if s.set && s.row == row && s.col == col {
		s.Clear()
		return false
	}
	s.row, s.col, s.set = row, col, true
	return true
}

// Clear drops the selection.
func (s *Selection) Clear() {
	*s = Selection{}
}

// Cell returns the selected cell.
func (s Selection) Cell() (row, col int, ok bool) {
	return s.row, s.col, s.set
}

// Is reports whether (row, col) is the selected cell.
func (s Selection) Is(row, col int) bool {
	return s.set && s.row == row && s.col == col
}

// RowSelected reports whether any cell of row is selected.
func (s Selection) RowSelected(row int) bool {
	return s.set && s.row == row
}
