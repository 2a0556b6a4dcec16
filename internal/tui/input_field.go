package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var errDigitsOnly = errors.New("digits only")

// textField is one labelled single-line input of a popup form.
type textField struct {
	label string
	input textinput.Model
}

// newTextField creates a blurred, empty field.
func newTextField(label string) *textField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Width = 40
	// HandleKey drops commands, so a blinking cursor would never blink.
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &textField{label: label, input: ti}
}

// digitsOnly accepts the empty string and ASCII digits.
func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return errDigitsOnly
		}
	}
	return nil
}

// Value returns the text entered so far.
func (f *textField) Value() string {
	return f.input.Value()
}

// SetValue replaces the text and puts the cursor at its end.
func (f *textField) SetValue(s string) {
	f.input.SetValue(s)
	f.input.CursorEnd()
}

// Reset clears the text.
func (f *textField) Reset() {
	f.input.Reset()
	f.input.Err = nil
}

// Focus makes the field receive keys.
func (f *textField) Focus() {
	f.input.Focus()
}

// Blur stops the field from receiving keys.
func (f *textField) Blur() {
	f.input.Blur()
}

// Focused reports whether the field receives keys.
func (f *textField) Focused() bool {
	return f.input.Focused()
}

// Update feeds one key to the field. An edit rejected by the field's
// Validate func is undone.
func (f *textField) Update(msg tea.KeyMsg) {
	if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
		msg.Runes = []rune{' '}
	}
	prev, pos := f.input.Value(), f.input.Position()
	f.input, _ = f.input.Update(msg)
	if f.input.Err != nil {
		f.input.SetValue(prev)
		f.input.SetCursor(pos)
		f.input.Err = nil
	}
}

// formField returns the render description of the field.
func (f *textField) formField(width int) formField {
	ff := formField{label: f.label, value: f.input.Value()}
	if f.input.Focused() {
		if width > 0 {
			f.input.Width = width
		}
		ff.value = f.input.View()
		ff.active = true
	}
	return ff
}

// focusOnly focuses fields[active] and blurs every other field.
func focusOnly[K comparable](fields map[K]*textField, active K) {
	for k, f := range fields {
		if k == active {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}
