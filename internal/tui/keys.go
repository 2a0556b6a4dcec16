package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding the screens react to. Keys no binding claims
// while a form is open go to the focused text field.
type keyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	PartsTab    key.Binding
	StockTab    key.Binding
	ProjectsTab key.Binding
	Screens     key.Binding

	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	New     key.Binding
	Edit    key.Binding
	Details key.Binding
	Create  key.Binding
	Focus   key.Binding
	Select  key.Binding
	Back    key.Binding

	NextField key.Binding
	Submit    key.Binding
	Cancel    key.Binding
}

var keys = keyMap{
	Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	PartsTab:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "parts")),
	StockTab:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "stock")),
	ProjectsTab: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "projects")),
	Screens:     key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "screens")),

	Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new part")),
	Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Details: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "details")),
	Create:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create")),
	Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
	Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

	NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// withHelp returns a copy of b with a different help text.
func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}
