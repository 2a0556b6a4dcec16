package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Footer renders the status line and keyboard hints.
type Footer struct {
	message   string
	isError   bool
	note      string
	refreshed time.Time
	now       func() time.Time
	width     int
	bindings  []key.Binding
	help      help.Model

	// Styles
	infoStyle      lipgloss.Style
	errorStyle     lipgloss.Style
	hintStyle      lipgloss.Style
	separatorStyle lipgloss.Style
}

// NewFooter creates a new Footer instance.
func NewFooter() *Footer {
	return &Footer{
		now:  time.Now,
		help: help.New(),

		infoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")).
			Bold(true),

		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),

		hintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		separatorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("236")),
	}
}

// SetMessage sets an informational status message.
func (f *Footer) SetMessage(message string) {
	f.message = message
	f.isError = false
}

// SetError shows err on the status line.
func (f *Footer) SetError(err error) {
	if err == nil {
		return
	}
	f.message = err.Error()
	f.isError = true
}

// ClearMessage empties the status line.
func (f *Footer) ClearMessage() {
	f.message = ""
	f.isError = false
}

// Message returns the current status text and whether it is an error.
func (f *Footer) Message() (string, bool) {
	return f.message, f.isError
}

// SetNote sets a fixed note shown before the hints.
func (f *Footer) SetNote(note string) {
	f.note = note
}

// SetRefreshed records when the visible data was last fetched.
func (f *Footer) SetRefreshed(t time.Time) {
	f.refreshed = t
}

// SetBindings sets the key hints for the current sub-state.
func (f *Footer) SetBindings(b []key.Binding) {
	f.bindings = b
}

// SetWidth sets the footer width.
func (f *Footer) SetWidth(width int) {
	f.width = width
	f.help.Width = width
}

// View renders the footer.
func (f *Footer) View() string {
	sep := f.separatorStyle.Render(" │ ")

	var status []string
	if f.message != "" {
		if f.isError {
			status = append(status, f.errorStyle.Render("✗ "+f.message))
		} else {
			status = append(status, f.infoStyle.Render(f.message))
		}
	}
	if f.note != "" {
		status = append(status, f.hintStyle.Render(f.note))
	}
	if !f.refreshed.IsZero() {
		status = append(status, f.hintStyle.Render("refreshed "+f.refreshedAgo()))
	}

	hints := f.help.ShortHelpView(f.bindings)
	if len(status) == 0 {
		return "\n" + hints
	}
	return strings.Join(status, sep) + "\n" + hints
}

func (f *Footer) refreshedAgo() string {
	now := f.now()
	if now.Sub(f.refreshed) < time.Second {
		return "just now"
	}
	return humanize.RelTime(f.refreshed, now, "ago", "from now")
}

// Height returns the footer height in lines.
func (f *Footer) Height() int {
	return 2
}
