package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
)

// Shared styles for every screen.
var (
	borderColor        = lipgloss.Color("240")
	focusedBorderColor = lipgloss.Color("205")

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	selectedCellStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("15")).
				Bold(true).
				Padding(0, 1)

	lowStockCellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	activeFieldStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	disabledFieldStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)
)

// panelStyle returns a bordered box, highlighted when focused.
func panelStyle(width, height int, focused bool) lipgloss.Style {
	c := borderColor
	if focused {
		c = focusedBorderColor
	}
	w, h := width-2, height-2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Width(w).
		Height(h)
}

// scrollWindow returns the first visible index so that selected stays on
// screen when only visible rows fit.
func scrollWindow(selected, total, visible int) int {
	if visible <= 0 || total <= visible || selected < visible {
		return 0
	}
	start := selected - visible + 1
	if start > total-visible {
		start = total - visible
	}
	return start
}

// tableSpec describes one table render.
type tableSpec struct {
	headers  []string
	rows     [][]string
	selected int
	width    int
	height   int
	focused  bool
	// rowStyle optionally overrides the style of an unselected row.
	rowStyle func(row int) (lipgloss.Style, bool)
}

// renderTable draws rows as a bordered table, windowed around the selection.
func renderTable(s tableSpec) string {
	// border top/bottom + header + header separator
	visible := s.height - 4
	if visible < 1 {
		visible = 1
	}
	start := scrollWindow(s.selected, len(s.rows), visible)
	end := start + visible
	if end > len(s.rows) {
		end = len(s.rows)
	}
	window := s.rows[start:end]

	bc := borderColor
	if s.focused {
		bc = focusedBorderColor
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(bc)).
		Headers(s.headers...).
		Rows(window...).
		Width(s.width).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			abs := start + row
			if abs == s.selected {
				return selectedCellStyle
			}
			if s.rowStyle != nil {
				if st, ok := s.rowStyle(abs); ok {
					return st
				}
			}
			return cellStyle
		})

	out := t.Render()
	if len(s.rows) == 0 {
		out = lipgloss.JoinVertical(lipgloss.Left, out, mutedStyle.Render("  (no rows)"))
	}
	return out
}

// formField is one labelled input in a popup form.
type formField struct {
	label    string
	value    string
	active   bool
	disabled bool
}

// renderForm draws a titled popup with labelled fields.
func renderForm(title string, fields []formField, width int, extra ...string) string {
	labelWidth := 0
	for _, f := range fields {
		if len(f.label) > labelWidth {
			labelWidth = len(f.label)
		}
	}

	lines := []string{titleStyle.Render(title), ""}
	for _, f := range fields {
		label := mutedStyle.Render(fmt.Sprintf("%-*s", labelWidth, f.label))
		value := f.value
		switch {
		case f.disabled:
			value = disabledFieldStyle.Render(value)
		case f.active:
			value = activeFieldStyle.Render(value)
		default:
			value = fieldStyle.Render(value)
		}
		lines = append(lines, label+" "+value)
	}
	if len(extra) > 0 {
		lines = append(lines, "")
		lines = append(lines, extra...)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(focusedBorderColor).
		Padding(0, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

// overlay draws popup centered over body, which is padded to the given size.
func overlay(body, popup string, width, height int) string {
	bg := strings.Split(lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, body), "\n")
	fg := strings.Split(popup, "\n")
	pw := lipgloss.Width(popup)

	x := max((width-pw)/2, 0)
	y := max((height-len(fg))/2, 0)
	for i, line := range fg {
		row := y + i
		if row >= len(bg) {
			break
		}
		left := ansi.Truncate(bg[row], x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		if w := ansi.StringWidth(line); w < pw {
			line += strings.Repeat(" ", pw-w)
		}
		right := ansi.TruncateLeft(bg[row], x+pw, "")
		bg[row] = left + ansi.ResetStyle + line + ansi.ResetStyle + right
	}
	return strings.Join(bg, "\n")
}
