// Package tui provides the terminal user interface for ShikaBOM.
//
// The UI has three screens, each a small state machine over sub-states:
//   - Parts: Main, NewPart, EditPart
//   - Stock: Main, CreateStock
//   - Projects: Main, ListMode, CreateNewProject, BOMMode, AddToBOM
//
// Every key press is routed to the active screen, which may mutate its own
// state and issue at most a handful of synchronous store calls. Failures are
// shown on the footer status line and logged; they never end the program.
//
// Usage:
//
//	app := tui.NewApp(st, tui.WithLogger(logger), tui.WithQueryTimeout(5*time.Second))
//	p := tea.NewProgram(app, tea.WithAltScreen())
//	_, err := p.Run()
//
// With a sqlite backend the database file can be watched so that writes from
// another process (the desktop server, an import) refresh the open screen:
//
//	w, _ := tui.NewDBWatcher(path)
//	app := tui.NewApp(st, tui.WithDBWatcher(w))
package tui
