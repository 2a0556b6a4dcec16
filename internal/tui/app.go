package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ShayCichocki/shikabom/internal/store"
)

// refreshMsg asks the active screen to re-fetch its rows.
type refreshMsg struct{}

// tickMsg re-renders the "refreshed ... ago" footer text.
type tickMsg time.Time

const tickInterval = 10 * time.Second

// screenView is what the app needs from every screen.
type screenView interface {
	HandleKey(ctx context.Context, msg tea.KeyMsg) (string, error)
	Refresh(ctx context.Context) error
	Typing() bool
	Bindings() []key.Binding
	Refreshed() time.Time
	View(l *LayoutManager) string
}

var (
	_ screenView = (*PartsView)(nil)
	_ screenView = (*StockView)(nil)
	_ screenView = (*ProjectsView)(nil)
)

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger used for data-access failures.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithQueryTimeout bounds every data call. Zero disables the bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(a *App) { a.timeout = d }
}

// WithDBWatcher refreshes the active screen when the database changes.
func WithDBWatcher(w *DBWatcher) Option {
	return func(a *App) { a.watcher = w }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
		a.parts.now = now
		a.stock.now = now
		a.projects.now = now
		a.footer.now = now
	}
}

// App is the root bubbletea model. It owns the three screens and routes
// key presses to the active one.
type App struct {
	store   store.Store
	logger  *zap.Logger
	timeout time.Duration
	watcher *DBWatcher
	now     func() time.Time

	screen   Screen
	parts    *PartsView
	stock    *StockView
	projects *ProjectsView

	header *Header
	footer *Footer
	layout *LayoutManager

	width    int
	height   int
	quitting bool
}

// NewApp creates the TUI over the given store.
func NewApp(s store.Store, opts ...Option) *App {
	a := &App{
		store:    s,
		logger:   zap.NewNop(),
		timeout:  5 * time.Second,
		now:      time.Now,
		screen:   ScreenParts,
		parts:    NewPartsView(s),
		stock:    NewStockView(s),
		projects: NewProjectsView(s),
		header:   NewHeader(),
		footer:   NewFooter(),
		layout:   NewLayoutManager(80, 24),
		width:    80,
		height:   24,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.layout.SetHeaderHeight(a.header.Height())
	a.layout.SetFooterHeight(a.footer.Height())
	return a
}

// Screen returns the active screen.
func (a *App) Screen() Screen { return a.screen }

// Parts returns the parts screen state.
func (a *App) Parts() *PartsView { return a.parts }

// Stock returns the stock screen state.
func (a *App) Stock() *StockView { return a.stock }

// Projects returns the projects screen state.
func (a *App) Projects() *ProjectsView { return a.projects }

// Footer returns the footer, whose status line carries errors.
func (a *App) Footer() *Footer { return a.footer }

// Quitting reports whether the app asked to exit.
func (a *App) Quitting() bool { return a.quitting }

func (a *App) active() screenView {
	switch a.screen {
	case ScreenStock:
		return a.stock
	case ScreenProjects:
		return a.projects
	default:
		return a.parts
	}
}

// ctx returns a context bounded by the configured query timeout.
func (a *App) ctx() (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), a.timeout)
}

// report puts the outcome of a screen action on the status line.
func (a *App) report(status string, err error) {
	if err != nil {
		a.logger.Error("data access failed",
			zap.String("screen", a.screen.String()),
			zap.Error(err))
		a.footer.SetError(err)
		return
	}
	if status != "" {
		a.logger.Info(status, zap.String("screen", a.screen.String()))
		a.footer.SetMessage(status)
	}
}

func (a *App) refreshActive() {
	ctx, cancel := a.ctx()
	defer cancel()
	a.report("", a.active().Refresh(ctx))
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		func() tea.Msg { return refreshMsg{} },
		tick(),
	}
	if a.watcher != nil {
		cmds = append(cmds, a.watcher.Wait())
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout.SetSize(msg.Width, msg.Height)
		a.header.SetWidth(msg.Width)
		a.footer.SetWidth(msg.Width)

	case refreshMsg:
		a.refreshActive()

	case tickMsg:
		return a, tick()

	case DBChangedMsg:
		if !a.active().Typing() && a.mainLike() {
			a.logger.Debug("database changed on disk", zap.String("path", msg.Path))
			a.refreshActive()
		}
		if a.watcher != nil {
			return a, a.watcher.Wait()
		}

	case DBWatchErrorMsg:
		a.logger.Warn("database watcher error", zap.Error(msg.Err))
		if a.watcher != nil {
			return a, a.watcher.Wait()
		}

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

// mainLike reports whether the active screen shows its plain table.
func (a *App) mainLike() bool {
	switch a.screen {
	case ScreenParts:
		return a.parts.SubState() == PartsMain
	case ScreenStock:
		return a.stock.SubState() == StockMain
	case ScreenProjects:
		s := a.projects.SubState()
		return s == ProjectsMain || s == ProjectsList || s == ProjectsBOM
	}
	return false
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		a.quitting = true
		return a, tea.Quit
	}

	if !a.active().Typing() {
		switch {
		case key.Matches(msg, keys.Quit):
			a.quitting = true
			return a, tea.Quit
		case key.Matches(msg, keys.PartsTab):
			a.switchTo(ScreenParts)
			return a, nil
		case key.Matches(msg, keys.StockTab):
			a.switchTo(ScreenStock)
			return a, nil
		case key.Matches(msg, keys.ProjectsTab):
			a.switchTo(ScreenProjects)
			return a, nil
		}
	}

	ctx, cancel := a.ctx()
	defer cancel()
	status, err := a.active().HandleKey(ctx, msg)
	if err == nil && status == "" {
		if m, isErr := a.footer.Message(); isErr && m != "" && !a.active().Typing() {
			a.footer.ClearMessage()
		}
	}
	a.report(status, err)
	return a, nil
}

func (a *App) switchTo(s Screen) {
	if a.screen == s {
		return
	}
	a.screen = s
	a.header.SetScreen(s)
	a.footer.ClearMessage()
	a.refreshActive()
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	a.footer.SetBindings(a.active().Bindings())
	a.footer.SetRefreshed(a.active().Refreshed())
	if a.screen == ScreenStock {
		a.footer.SetNote("Only stocked parts are shown.")
	} else {
		a.footer.SetNote("")
	}

	body := lipgloss.NewStyle().
		Height(a.layout.ContentHeight()).
		MaxHeight(a.layout.ContentHeight()).
		Render(a.active().View(a.layout))

	return lipgloss.JoinVertical(lipgloss.Left, a.header.View(), body, a.footer.View())
}
