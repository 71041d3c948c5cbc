package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAvailable = lipgloss.Color("#e53935") // red border: not placed yet
	colorPlaced    = lipgloss.Color("#101F38") // dark border: placed in a box
	colorMuted     = lipgloss.Color("#8a8f98")
	colorCursor    = lipgloss.Color("#8BC34A")
)

// Styles holds the rendering styles of the board.
type Styles struct {
	Title     lipgloss.Style
	Target    lipgloss.Style
	Box       lipgloss.Style
	BoxFilled lipgloss.Style
	Available lipgloss.Style
	Placed    lipgloss.Style
	Cursor    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Button    lipgloss.Style
	ButtonOff lipgloss.Style
}

// DefaultStyles returns the terminal palette.
func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Width(10).Align(lipgloss.Center).Padding(0, 1)
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true),
		Target:    cell.Bold(true),
		Box:       cell.Border(lipgloss.NormalBorder()).BorderForeground(colorMuted).Foreground(colorMuted),
		BoxFilled: cell.Border(lipgloss.NormalBorder()).BorderForeground(colorPlaced),
		Available: cell.Border(lipgloss.RoundedBorder()).BorderForeground(colorAvailable),
		Placed:    cell.Border(lipgloss.RoundedBorder()).BorderForeground(colorPlaced).Foreground(colorMuted),
		Cursor:    lipgloss.NewStyle().Foreground(colorCursor).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(colorMuted),
		Error:     lipgloss.NewStyle().Foreground(colorAvailable),
		Button:    lipgloss.NewStyle().Bold(true).Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(colorCursor),
		ButtonOff: lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Foreground(colorMuted),
	}
}
