package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Screen identifies one of the top-level screens.
type Screen int

const (
	ScreenParts Screen = iota
	ScreenStock
	ScreenProjects
)

// String returns the tab label of the screen.
func (s Screen) String() string {
	switch s {
	case ScreenParts:
		return "Parts"
	case ScreenStock:
		return "Stock"
	case ScreenProjects:
		return "Projects"
	default:
		return "Unknown"
	}
}

var screens = []Screen{ScreenParts, ScreenStock, ScreenProjects}

// TabBar shows the screens with the active one highlighted.
type TabBar struct {
	active Screen

	// Styles
	activeStyle   lipgloss.Style
	inactiveStyle lipgloss.Style
	indexStyle    lipgloss.Style
}

// NewTabBar creates a new TabBar with Parts active.
func NewTabBar() TabBar {
	return TabBar{
		active: ScreenParts,

		activeStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 2),

		inactiveStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 2),

		indexStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// View renders the tab bar.
func (t TabBar) View() string {
	var rendered []string
	for i, s := range screens {
		label := t.indexStyle.Render(string(rune('1'+i))) + " " + s.String()
		if s == t.active {
			rendered = append(rendered, t.activeStyle.Render(label))
		} else {
			rendered = append(rendered, t.inactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// SetActive sets the active screen.
// If the screen is out of range, it is clamped to the valid range.
func (t *TabBar) SetActive(s Screen) {
	switch {
	case s < ScreenParts:
		t.active = ScreenParts
	case s > ScreenProjects:
		t.active = ScreenProjects
	default:
		t.active = s
	}
}

// Active returns the currently active screen.
func (t TabBar) Active() Screen {
	return t.active
}
