package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
)

func TestFooterStatus(t *testing.T) {
	f := NewFooter()
	f.now = func() time.Time { return fixedNow }

	f.SetMessage("created part R9")
	if msg, isErr := f.Message(); msg != "created part R9" || isErr {
		t.Errorf("Expected info message, got %q (error=%v)", msg, isErr)
	}

	f.SetError(errors.New("boom"))
	if msg, isErr := f.Message(); msg != "boom" || !isErr {
		t.Errorf("Expected error message, got %q (error=%v)", msg, isErr)
	}
	if !strings.Contains(f.View(), "boom") {
		t.Error("Expected error rendered")
	}

	f.SetError(nil)
	if msg, _ := f.Message(); msg != "boom" {
		t.Errorf("Expected nil error to be ignored, got %q", msg)
	}

	f.ClearMessage()
	if msg, _ := f.Message(); msg != "" {
		t.Errorf("Expected cleared message, got %q", msg)
	}
}

func TestFooterRefreshedAgo(t *testing.T) {
	f := NewFooter()
	f.now = func() time.Time { return fixedNow }

	if strings.Contains(f.View(), "refreshed") {
		t.Error("Expected no refresh time before the first refresh")
	}

	f.SetRefreshed(fixedNow)
	if !strings.Contains(f.View(), "refreshed just now") {
		t.Errorf("Expected 'just now', got %q", f.View())
	}

	f.SetRefreshed(fixedNow.Add(-3 * time.Minute))
	if !strings.Contains(f.View(), "refreshed 3 minutes ago") {
		t.Errorf("Expected humanized age, got %q", f.View())
	}
}

func TestFooterHints(t *testing.T) {
	f := NewFooter()
	f.SetWidth(200)
	f.SetBindings([]key.Binding{keys.Refresh, keys.Quit})

	view := f.View()
	if !strings.Contains(view, "refresh") || !strings.Contains(view, "quit") {
		t.Errorf("Expected key hints in footer, got %q", view)
	}
	if got := strings.Count(view, "\n"); got != 1 {
		t.Errorf("Expected two footer lines, got %d newlines", got)
	}
}
