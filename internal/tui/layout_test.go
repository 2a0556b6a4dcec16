package tui

import "testing"

func TestCalculateTable(t *testing.T) {
	l := NewLayoutManager(100, 30)

	dims := l.CalculateTable(false)
	if dims.MainWidth != 100 || dims.SideWidth != 0 {
		t.Errorf("Expected full-width table, got %+v", dims)
	}
	if dims.ContentHeight != 26 {
		t.Errorf("Expected content height 26, got %d", dims.ContentHeight)
	}

	dims = l.CalculateTable(true)
	if dims.SideWidth != 30 || dims.MainWidth != 70 {
		t.Errorf("Expected 70/30 split, got %+v", dims)
	}

	l.SetSize(60, 30)
	dims = l.CalculateTable(true)
	if dims.SideWidth != 24 {
		t.Errorf("Expected side panel floor of 24, got %d", dims.SideWidth)
	}
}

func TestCalculateProjects(t *testing.T) {
	l := NewLayoutManager(200, 50)

	dims := l.CalculateProjects()
	if dims.SideWidth != 30 || dims.MainWidth != 170 {
		t.Errorf("Expected 30/170 split, got %+v", dims)
	}
}

func TestPopupSizeBounded(t *testing.T) {
	l := NewLayoutManager(40, 12)

	w, h := l.PopupSize(60, 20)
	if w != 38 {
		t.Errorf("Expected width bounded to 38, got %d", w)
	}
	if h != 8 {
		t.Errorf("Expected height bounded to content height 8, got %d", h)
	}
}

func TestContentHeightFloor(t *testing.T) {
	l := NewLayoutManager(80, 3)
	if got := l.ContentHeight(); got != 1 {
		t.Errorf("Expected content height floor of 1, got %d", got)
	}
}
