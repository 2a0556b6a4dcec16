package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Header renders the title and the screen tabs.
type Header struct {
	width int
	tabs  TabBar

	titleStyle lipgloss.Style
	barStyle   lipgloss.Style
}

// NewHeader creates a new Header.
func NewHeader() *Header {
	return &Header{
		width: 80,
		tabs:  NewTabBar(),

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFC857")).
			Padding(0, 1),

		barStyle: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("238")),
	}
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetScreen highlights the given screen tab.
func (h *Header) SetScreen(s Screen) {
	h.tabs.SetActive(s)
}

// View renders the header.
func (h *Header) View() string {
	line := lipgloss.JoinHorizontal(lipgloss.Top, h.titleStyle.Render("ShikaBOM"), h.tabs.View())
	return h.barStyle.Width(h.width).Render(line)
}

// Height returns the header height in lines.
func (h *Header) Height() int {
	return 2 // title row + bottom border
}
