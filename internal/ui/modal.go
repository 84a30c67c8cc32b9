package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for overlays that take the keyboard.
// Update returns the updated modal, a command, and whether the modal closed.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// placeModal centers a bordered box on the screen.
func placeModal(theme Theme, width, height, boxWidth int, content string) string {
	box := theme.Styles().Modal.Width(min(boxWidth, max(10, width-4))).Render(content)
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
