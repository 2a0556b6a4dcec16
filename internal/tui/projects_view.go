package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

// ProjectsSubState is the modal mode of the projects screen.
type ProjectsSubState int

const (
	ProjectsMain ProjectsSubState = iota
	ProjectsList
	ProjectsCreate
	ProjectsBOM
	ProjectsAddToBOM
)

// String returns a short name for the sub-state.
func (s ProjectsSubState) String() string {
	switch s {
	case ProjectsMain:
		return "main"
	case ProjectsList:
		return "list"
	case ProjectsCreate:
		return "create project"
	case ProjectsBOM:
		return "bom"
	case ProjectsAddToBOM:
		return "add to bom"
	default:
		return "unknown"
	}
}

// BOMField identifies an input of the add-to-BOM popup.
type BOMField int

const (
	BOMFieldPartNumber BOMField = iota
	BOMFieldDesignators
	BOMFieldQty
)

// String returns the label of the field.
func (f BOMField) String() string {
	switch f {
	case BOMFieldPartNumber:
		return "PN"
	case BOMFieldDesignators:
		return "Designators"
	case BOMFieldQty:
		return "Qty"
	default:
		return "Unknown"
	}
}

// Next returns the following field, wrapping to the part number.
func (f BOMField) Next() BOMField {
	if f >= BOMFieldQty {
		return BOMFieldPartNumber
	}
	return f + 1
}

var (
	errNoProjectLoaded = errors.New("no project loaded")
	errNoPartSelected  = errors.New("select a part to add")
	errBOMQty          = errors.New("qty must be a whole number greater than zero")
)

// ProjectsView is the state of the projects screen.
type ProjectsView struct {
	store store.Store
	now   func() time.Time

	sub      ProjectsSubState
	projects []models.Project

	// listCursor is the highlighted row of the project list; loaded is the
	// index of the project whose BOM is shown.
	listCursor int
	loaded     int
	current    *models.Project
	bomCursor  int

	name *textField

	candidates []string
	candCursor int
	bomField   BOMField
	bomInputs  map[BOMField]*textField

	refreshed time.Time
}

// NewProjectsView creates the projects screen with nothing loaded.
func NewProjectsView(s store.Store) *ProjectsView {
	return &ProjectsView{
		store:      s,
		now:        time.Now,
		listCursor: -1,
		loaded:     -1,
		bomCursor:  -1,
		candCursor: -1,
		name:       newTextField("Name"),
		bomInputs: map[BOMField]*textField{
			BOMFieldDesignators: newTextField(BOMFieldDesignators.String()),
			BOMFieldQty:         newTextField(BOMFieldQty.String()),
		},
	}
}

// SubState returns the current sub-state.
func (v *ProjectsView) SubState() ProjectsSubState { return v.sub }

// Typing reports whether keys are consumed as text.
func (v *ProjectsView) Typing() bool {
	return v.sub == ProjectsCreate || v.sub == ProjectsAddToBOM
}

// Projects returns the project list.
func (v *ProjectsView) Projects() []models.Project { return v.projects }

// ListCursor returns the highlighted project list row, or -1.
func (v *ProjectsView) ListCursor() int { return v.listCursor }

// Loaded returns the index of the project whose BOM is loaded, or -1.
func (v *ProjectsView) Loaded() int { return v.loaded }

// Current returns the loaded project, if any.
func (v *ProjectsView) Current() *models.Project { return v.current }

// BOMCursor returns the selected BOM row, or -1.
func (v *ProjectsView) BOMCursor() int { return v.bomCursor }

// Candidates returns the parts offered by the add-to-BOM popup.
func (v *ProjectsView) Candidates() []string { return v.candidates }

// BOMField returns the active add-to-BOM field.
func (v *ProjectsView) BOMField() BOMField { return v.bomField }

// BOMInput returns the text entered in add-to-BOM field f. The part number
// is picked from a list and has no text.
func (v *ProjectsView) BOMInput(f BOMField) string {
	if in, ok := v.bomInputs[f]; ok {
		return in.Value()
	}
	return ""
}

// NewName returns the name typed into the create-project popup.
func (v *ProjectsView) NewName() string { return v.name.Value() }

// focusBOM makes f the active add-to-BOM field; the part list has no input.
func (v *ProjectsView) focusBOM(f BOMField) {
	v.bomField = f
	focusOnly(v.bomInputs, f)
}

// Refreshed returns when the list was last fetched.
func (v *ProjectsView) Refreshed() time.Time { return v.refreshed }

// Refresh re-fetches the project list and, when one is loaded, its BOM.
func (v *ProjectsView) Refresh(ctx context.Context) error {
	projects, err := v.store.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("refresh projects: %w", err)
	}
	v.projects = projects
	v.listCursor = clampSelection(v.listCursor, len(projects))
	v.refreshed = v.now()

	if v.current == nil {
		v.loaded = clampSelection(v.loaded, len(projects))
		return nil
	}
	v.loaded = v.indexOf(v.current.Name)
	if v.loaded < 0 {
		v.current = nil
		v.bomCursor = -1
		return nil
	}
	return v.load(ctx, v.loaded)
}

func (v *ProjectsView) indexOf(name string) int {
	for i, p := range v.projects {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// load fetches the project at index i and makes it the loaded project.
func (v *ProjectsView) load(ctx context.Context, i int) error {
	if i < 0 || i >= len(v.projects) {
		return nil
	}
	p, err := v.store.GetProject(ctx, v.projects[i].Name)
	if err != nil {
		return err
	}
	v.current = p
	v.loaded = i
	v.bomCursor = clampSelection(v.bomCursor, len(p.Parts))
	return nil
}

// HandleKey applies one key press and returns a status message.
func (v *ProjectsView) HandleKey(ctx context.Context, msg tea.KeyMsg) (string, error) {
	switch v.sub {
	case ProjectsMain:
		if key.Matches(msg, keys.Focus) {
			v.sub = ProjectsList
		}
	case ProjectsList:
		return v.handleList(ctx, msg)
	case ProjectsCreate:
		return v.handleCreate(ctx, msg)
	case ProjectsBOM:
		return v.handleBOM(ctx, msg)
	case ProjectsAddToBOM:
		return v.handleAddToBOM(ctx, msg)
	}
	return "", nil
}

func (v *ProjectsView) handleList(ctx context.Context, msg tea.KeyMsg) (string, error) {
	switch {
	case key.Matches(msg, keys.Back):
		v.sub = ProjectsMain

	case key.Matches(msg, keys.Focus):
		if v.loaded >= 0 && v.listCursor != v.loaded {
			v.listCursor = v.loaded
		}
		v.sub = ProjectsBOM

	case key.Matches(msg, keys.Select):
		if v.listCursor < 0 {
			return "", nil
		}
		v.bomCursor = -1
		if err := v.load(ctx, v.listCursor); err != nil {
			return "", err
		}
		v.sub = ProjectsBOM

	case key.Matches(msg, keys.Up):
		v.listCursor = moveSelection(v.listCursor, -1, len(v.projects))

	case key.Matches(msg, keys.Down):
		v.listCursor = moveSelection(v.listCursor, 1, len(v.projects))

	case key.Matches(msg, keys.Refresh):
		if err := v.Refresh(ctx); err != nil {
			return "", err
		}
		return "projects refreshed", nil

	case key.Matches(msg, keys.Create):
		v.name.Reset()
		v.name.Focus()
		v.sub = ProjectsCreate
	}
	return "", nil
}

func (v *ProjectsView) handleCreate(ctx context.Context, msg tea.KeyMsg) (string, error) {
	switch {
	case key.Matches(msg, keys.Cancel):
		v.name.Blur()
		v.sub = ProjectsList

	case key.Matches(msg, keys.Submit):
		name := strings.TrimSpace(v.name.Value())
		if err := v.store.CreateProject(ctx, name); err != nil {
			return "", err
		}
		v.name.Reset()
		v.name.Blur()
		v.current = nil
		if err := v.Refresh(ctx); err != nil {
			return "", err
		}
		idx := v.indexOf(name)
		v.listCursor = idx
		v.bomCursor = -1
		if err := v.load(ctx, idx); err != nil {
			return "", err
		}
		v.sub = ProjectsBOM
		return fmt.Sprintf("created project %s", name), nil

	default:
		v.name.Update(msg)
	}
	return "", nil
}

func (v *ProjectsView) handleBOM(ctx context.Context, msg tea.KeyMsg) (string, error) {
	switch {
	case key.Matches(msg, keys.Back):
		v.sub = ProjectsMain

	case key.Matches(msg, keys.Focus):
		v.sub = ProjectsList

	case key.Matches(msg, keys.Create):
		if v.current == nil {
			return "", errNoProjectLoaded
		}
		cands, err := v.store.ListPartsNotInProject(ctx, v.current.Name)
		if err != nil {
			return "", err
		}
		v.candidates = cands
		v.candCursor = clampSelection(0, len(cands))
		for _, in := range v.bomInputs {
			in.Reset()
		}
		v.focusBOM(BOMFieldPartNumber)
		v.sub = ProjectsAddToBOM

	case key.Matches(msg, keys.Up):
		if v.current != nil {
			v.bomCursor = moveSelection(v.bomCursor, -1, len(v.current.Parts))
		}

	case key.Matches(msg, keys.Down):
		if v.current != nil {
			v.bomCursor = moveSelection(v.bomCursor, 1, len(v.current.Parts))
		}
	}
	return "", nil
}

func (v *ProjectsView) handleAddToBOM(ctx context.Context, msg tea.KeyMsg) (string, error) {
	switch {
	case key.Matches(msg, keys.Cancel):
		focusOnly(v.bomInputs, BOMFieldPartNumber)
		v.sub = ProjectsBOM

	case key.Matches(msg, keys.NextField):
		v.focusBOM(v.bomField.Next())

	case key.Matches(msg, keys.Up):
		switch v.bomField {
		case BOMFieldPartNumber:
			v.candCursor = moveSelection(v.candCursor, -1, len(v.candidates))
		case BOMFieldQty:
			v.focusBOM(BOMFieldDesignators)
		}

	case key.Matches(msg, keys.Down):
		switch v.bomField {
		case BOMFieldPartNumber:
			v.candCursor = moveSelection(v.candCursor, 1, len(v.candidates))
		case BOMFieldDesignators:
			v.focusBOM(BOMFieldQty)
		}

	case key.Matches(msg, keys.Submit):
		return v.submitComponent(ctx)

	default:
		if in, ok := v.bomInputs[v.bomField]; ok {
			in.Update(msg)
		}
	}
	return "", nil
}

func (v *ProjectsView) submitComponent(ctx context.Context) (string, error) {
	if v.current == nil {
		return "", errNoProjectLoaded
	}
	if v.candCursor < 0 || v.candCursor >= len(v.candidates) {
		return "", errNoPartSelected
	}
	qty, err := strconv.ParseInt(strings.TrimSpace(v.BOMInput(BOMFieldQty)), 10, 64)
	if err != nil || qty <= 0 {
		return "", errBOMQty
	}
	c := models.ProjectComponent{
		PartNumber:  v.candidates[v.candCursor],
		Designators: strings.TrimSpace(v.BOMInput(BOMFieldDesignators)),
		Qty:         qty,
	}
	if err := v.store.AddComponent(ctx, v.current.Name, c); err != nil {
		return "", err
	}
	if err := v.load(ctx, v.loaded); err != nil {
		return "", err
	}
	focusOnly(v.bomInputs, BOMFieldPartNumber)
	v.sub = ProjectsBOM
	return fmt.Sprintf("added %s to %s", c.PartNumber, v.current.Name), nil
}

// Bindings returns the key hints of the current sub-state.
func (v *ProjectsView) Bindings() []key.Binding {
	switch v.sub {
	case ProjectsList:
		return []key.Binding{keys.Up, keys.Down, keys.Select, withHelp(keys.Create, "new project"), keys.Refresh, withHelp(keys.Focus, "bom"), keys.Back, keys.Quit}
	case ProjectsCreate:
		return []key.Binding{withHelp(keys.Submit, "create"), keys.Cancel}
	case ProjectsBOM:
		return []key.Binding{keys.Up, keys.Down, withHelp(keys.Create, "add part"), withHelp(keys.Focus, "list"), keys.Back, keys.Quit}
	case ProjectsAddToBOM:
		return []key.Binding{keys.NextField, withHelp(keys.Up, "part/field"), withHelp(keys.Down, "part/field"), withHelp(keys.Submit, "add"), keys.Cancel}
	}
	return []key.Binding{withHelp(keys.Focus, "projects"), keys.Screens, keys.Quit}
}
