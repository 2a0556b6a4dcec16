package tui

// PanelDimensions holds calculated dimensions for the panels of a screen.
type PanelDimensions struct {
	// MainWidth is the width of the primary table.
	MainWidth int
	// SideWidth is the width of the secondary panel (0 when hidden).
	SideWidth int
	// ContentHeight is the height available between header and footer.
	ContentHeight int
}

// LayoutManager calculates panel dimensions based on terminal size.
type LayoutManager struct {
	totalWidth   int
	totalHeight  int
	headerHeight int
	footerHeight int
}

// NewLayoutManager creates a new LayoutManager with the given terminal dimensions.
func NewLayoutManager(width, height int) *LayoutManager {
	return &LayoutManager{
		totalWidth:   width,
		totalHeight:  height,
		headerHeight: 2,
		footerHeight: 2,
	}
}

// SetSize updates the terminal dimensions.
func (l *LayoutManager) SetSize(width, height int) {
	l.totalWidth = width
	l.totalHeight = height
}

// SetHeaderHeight sets the header height.
func (l *LayoutManager) SetHeaderHeight(height int) {
	l.headerHeight = height
}

// SetFooterHeight sets the footer height.
func (l *LayoutManager) SetFooterHeight(height int) {
	l.footerHeight = height
}

func (l *LayoutManager) contentHeight() int {
	h := l.totalHeight - l.headerHeight - l.footerHeight
	if h < 1 {
		h = 1
	}
	return h
}

// split divides the width into a main and side part, the side taking pct percent.
func (l *LayoutManager) split(pct, minSide int) PanelDimensions {
	side := l.totalWidth * pct / 100
	if side < minSide {
		side = minSide
	}
	if side > l.totalWidth {
		side = l.totalWidth
	}
	return PanelDimensions{
		MainWidth:     l.totalWidth - side,
		SideWidth:     side,
		ContentHeight: l.contentHeight(),
	}
}

// CalculateTable returns dimensions for a full-width table, optionally with
// a details panel taking 30% on the right.
func (l *LayoutManager) CalculateTable(details bool) PanelDimensions {
	if !details {
		return PanelDimensions{
			MainWidth:     l.totalWidth,
			ContentHeight: l.contentHeight(),
		}
	}
	return l.split(30, 24)
}

// CalculateProjects returns dimensions for the projects screen: list 15%
// on the left, BOM 85% on the right. SideWidth is the list.
func (l *LayoutManager) CalculateProjects() PanelDimensions {
	return l.split(15, 16)
}

// PopupSize returns a popup size bounded by the terminal.
func (l *LayoutManager) PopupSize(wantWidth, wantHeight int) (int, int) {
	w, h := wantWidth, wantHeight
	if w > l.totalWidth-2 {
		w = l.totalWidth - 2
	}
	if h > l.contentHeight() {
		h = l.contentHeight()
	}
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	return w, h
}

// TotalWidth returns the current terminal width.
func (l *LayoutManager) TotalWidth() int {
	return l.totalWidth
}

// TotalHeight returns the current terminal height.
func (l *LayoutManager) TotalHeight() int {
	return l.totalHeight
}

// ContentHeight returns the height between header and footer.
func (l *LayoutManager) ContentHeight() int {
	return l.contentHeight()
}
