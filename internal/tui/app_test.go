package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/internal/store/memory"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app := NewApp(seededStore(t), WithClock(func() time.Time { return fixedNow }))
	app.Update(refreshMsg{})
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}

func send(app *App, msg tea.Msg) tea.Cmd {
	_, cmd := app.Update(msg)
	return cmd
}

func TestAppStartsOnParts(t *testing.T) {
	app := newTestApp(t)

	if app.Screen() != ScreenParts {
		t.Fatalf("Expected parts screen, got %s", app.Screen())
	}
	if len(app.Parts().Parts()) != 3 {
		t.Errorf("Expected initial refresh to load 3 parts, got %d", len(app.Parts().Parts()))
	}
}

func TestAppScreenSwitching(t *testing.T) {
	app := newTestApp(t)

	send(app, runeKey("2"))
	if app.Screen() != ScreenStock {
		t.Fatalf("Expected stock screen, got %s", app.Screen())
	}
	if len(app.Stock().Rows()) != 2 {
		t.Errorf("Expected switching to refresh stock, got %d rows", len(app.Stock().Rows()))
	}

	send(app, runeKey("3"))
	if app.Screen() != ScreenProjects {
		t.Fatalf("Expected projects screen, got %s", app.Screen())
	}
	if len(app.Projects().Projects()) != 1 {
		t.Errorf("Expected switching to refresh projects, got %d", len(app.Projects().Projects()))
	}

	send(app, runeKey("1"))
	if app.Screen() != ScreenParts {
		t.Errorf("Expected parts screen, got %s", app.Screen())
	}
}

func TestAppDigitsTypedInForms(t *testing.T) {
	app := newTestApp(t)

	send(app, runeKey("n"))
	send(app, runeKey("2"))
	send(app, runeKey("q"))
	if app.Screen() != ScreenParts {
		t.Fatalf("Expected to stay on parts while typing, got %s", app.Screen())
	}
	if app.Quitting() {
		t.Fatal("Expected q to be typed, not quit")
	}
	form, _ := app.Parts().Form()
	if form.PartNumber != "2q" {
		t.Errorf("Expected part number %q, got %q", "2q", form.PartNumber)
	}
}

func TestAppQuit(t *testing.T) {
	tests := []struct {
		name  string
		setup []tea.KeyMsg
		key   tea.KeyMsg
		quits bool
	}{
		{name: "q in main", key: runeKey("q"), quits: true},
		{name: "q in form", setup: []tea.KeyMsg{runeKey("n")}, key: runeKey("q"), quits: false},
		{name: "ctrl+c in main", key: keyCtrlC, quits: true},
		{name: "ctrl+c in form", setup: []tea.KeyMsg{runeKey("n")}, key: keyCtrlC, quits: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			for _, k := range tt.setup {
				send(app, k)
			}
			cmd := send(app, tt.key)
			if app.Quitting() != tt.quits {
				t.Fatalf("Expected quitting %v, got %v", tt.quits, app.Quitting())
			}
			if tt.quits {
				if cmd == nil {
					t.Fatal("Expected a quit command")
				}
				if _, ok := cmd().(tea.QuitMsg); !ok {
					t.Error("Expected tea.QuitMsg")
				}
				if app.View() != "" {
					t.Error("Expected empty view after quit")
				}
			}
		})
	}
}

func TestAppErrorsGoToStatusLine(t *testing.T) {
	app := newTestApp(t)

	send(app, runeKey("n"))
	send(app, keyEnter)
	msg, isErr := app.Footer().Message()
	if !isErr {
		t.Fatalf("Expected an error status, got %q", msg)
	}
	if !strings.Contains(msg, store.ErrEmptyPartNumber.Error()) {
		t.Errorf("Expected empty part number error, got %q", msg)
	}
	if app.Parts().SubState() != PartsNewPart {
		t.Errorf("Expected form to stay open, got %s", app.Parts().SubState())
	}

	send(app, runeKey("Z9"))
	send(app, keyEnter)
	msg, isErr = app.Footer().Message()
	if isErr {
		t.Errorf("Expected success status, got error %q", msg)
	}
	if !strings.Contains(msg, "Z9") {
		t.Errorf("Expected status to name the part, got %q", msg)
	}
}

// failingStore fails every part listing.
type failingStore struct {
	*memory.Store
}

func (failingStore) ListParts(context.Context) ([]models.Part, error) {
	return nil, errors.New("connection refused")
}

func TestAppRefreshFailureDoesNotCrash(t *testing.T) {
	app := NewApp(failingStore{memory.New()})
	send(app, refreshMsg{})

	msg, isErr := app.Footer().Message()
	if !isErr || !strings.Contains(msg, "connection refused") {
		t.Errorf("Expected refresh error on the status line, got %q (error=%v)", msg, isErr)
	}
	if app.View() == "" {
		t.Error("Expected the app to keep rendering")
	}
}

func TestAppDBChangedRefreshesMainOnly(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	if err := app.store.CreatePart(ctx, &models.Part{PartNumber: "D1"}); err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	send(app, DBChangedMsg{Path: "shikabom.db"})
	if len(app.Parts().Parts()) != 4 {
		t.Fatalf("Expected change to refresh main table, got %d parts", len(app.Parts().Parts()))
	}

	send(app, runeKey("n"))
	if err := app.store.CreatePart(ctx, &models.Part{PartNumber: "D2"}); err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	send(app, DBChangedMsg{Path: "shikabom.db"})
	if len(app.Parts().Parts()) != 4 {
		t.Errorf("Expected no refresh while the form is open, got %d parts", len(app.Parts().Parts()))
	}
}

func TestAppViewLayout(t *testing.T) {
	app := newTestApp(t)

	view := app.View()
	if !strings.Contains(view, "ShikaBOM") {
		t.Error("Expected header title in view")
	}
	if !strings.Contains(view, "Part Number") {
		t.Error("Expected parts table headers in view")
	}
	if got := strings.Count(view, "\n") + 1; got > 40 {
		t.Errorf("Expected view to fit 40 rows, got %d", got)
	}

	send(app, runeKey("2"))
	if !strings.Contains(app.View(), "Only stocked parts are shown.") {
		t.Error("Expected stock footer note")
	}
}
