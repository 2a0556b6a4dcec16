package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

// PartsSubState is the modal mode of the parts screen.
type PartsSubState int

const (
	PartsMain PartsSubState = iota
	PartsNewPart
	PartsEditPart
)

// String returns a short name for the sub-state.
func (s PartsSubState) String() string {
	switch s {
	case PartsMain:
		return "main"
	case PartsNewPart:
		return "new part"
	case PartsEditPart:
		return "edit part"
	default:
		return "unknown"
	}
}

// PartsView is the state of the parts screen.
type PartsView struct {
	store store.Store
	now   func() time.Time

	sub      PartsSubState
	parts    []models.Part
	selected int

	// form is the part being created or edited; inputs hold its text.
	form   models.Part
	inputs map[models.PartField]*textField
	field  models.PartField

	showDetails   bool
	detail        *models.Part
	detailStorage []models.PartStorage
	detailScroll  int

	refreshed time.Time
}

// NewPartsView creates the parts screen with nothing selected.
func NewPartsView(s store.Store) *PartsView {
	inputs := make(map[models.PartField]*textField)
	for _, f := range models.PartFields() {
		inputs[f] = newTextField(f.String())
	}
	return &PartsView{
		store:    s,
		now:      time.Now,
		selected: -1,
		inputs:   inputs,
	}
}

// SubState returns the current sub-state.
func (v *PartsView) SubState() PartsSubState { return v.sub }

// Typing reports whether keys are consumed as text.
func (v *PartsView) Typing() bool { return v.sub != PartsMain }

// Parts returns the rows currently shown.
func (v *PartsView) Parts() []models.Part { return v.parts }

// Selected returns the selected row index, or -1.
func (v *PartsView) Selected() int { return v.selected }

// Form returns the part being edited and the active field.
func (v *PartsView) Form() (models.Part, models.PartField) {
	p := v.form
	for f, in := range v.inputs {
		p.Set(f, in.Value())
	}
	return p, v.field
}

// openForm loads p into the inputs and focuses field.
func (v *PartsView) openForm(p models.Part, field models.PartField) {
	v.form = p
	for f, in := range v.inputs {
		in.SetValue(p.Get(f))
	}
	v.focus(field)
}

func (v *PartsView) focus(field models.PartField) {
	v.field = field
	focusOnly(v.inputs, field)
}

// Details reports whether the details panel is open.
func (v *PartsView) Details() bool { return v.showDetails }

// DetailScroll returns the details panel scroll offset.
func (v *PartsView) DetailScroll() int { return v.detailScroll }

// Refreshed returns when the rows were last fetched.
func (v *PartsView) Refreshed() time.Time { return v.refreshed }

// Refresh re-fetches every part, keeping the selection in range.
func (v *PartsView) Refresh(ctx context.Context) error {
	parts, err := v.store.ListParts(ctx)
	if err != nil {
		return fmt.Errorf("refresh parts: %w", err)
	}
	v.parts = parts
	v.selected = clampSelection(v.selected, len(parts))
	v.refreshed = v.now()
	return nil
}

func (v *PartsView) selectedPN() (string, bool) {
	if v.selected < 0 || v.selected >= len(v.parts) {
		return "", false
	}
	return v.parts[v.selected].PartNumber, true
}

func (v *PartsView) selectPN(pn string) {
	for i, p := range v.parts {
		if p.PartNumber == pn {
			v.selected = i
			return
		}
	}
}

// HandleKey applies one key press and returns a status message.
func (v *PartsView) HandleKey(ctx context.Context, msg tea.KeyMsg) (string, error) {
	switch v.sub {
	case PartsMain:
		return v.handleMain(ctx, msg)
	case PartsNewPart, PartsEditPart:
		return v.handleForm(ctx, msg)
	}
	return "", nil
}

func (v *PartsView) handleMain(ctx context.Context, msg tea.KeyMsg) (string, error) {
	switch {
	case key.Matches(msg, keys.New):
		v.openForm(models.Part{}, models.FieldPartNumber)
		v.sub = PartsNewPart

	case key.Matches(msg, keys.Refresh):
		if err := v.Refresh(ctx); err != nil {
			return "", err
		}
		return "parts refreshed", nil

	case key.Matches(msg, keys.Edit):
		pn, ok := v.selectedPN()
		if !ok {
			return "", nil
		}
		p, err := v.store.GetPart(ctx, pn)
		if err != nil {
			return "", err
		}
		v.sub = PartsEditPart
		v.openForm(*p, models.FieldManufacturer)

	case key.Matches(msg, keys.Details):
		pn, ok := v.selectedPN()
		if !ok {
			return "", nil
		}
		p, err := v.store.GetPart(ctx, pn)
		if err != nil {
			return "", err
		}
		storage, err := v.store.ListPartStorage(ctx, pn)
		if err != nil {
			return "", err
		}
		v.detail = p
		v.detailStorage = storage
		v.detailScroll = 0
		v.showDetails = !v.showDetails

	case key.Matches(msg, keys.Down):
		if v.showDetails {
			if v.detailScroll < v.maxDetailScroll() {
				v.detailScroll++
			}
			return "", nil
		}
		return "", v.moveAndLoad(ctx, 1)

	case key.Matches(msg, keys.Up):
		if v.showDetails {
			if v.detailScroll > 0 {
				v.detailScroll--
			}
			return "", nil
		}
		return "", v.moveAndLoad(ctx, -1)
	}
	return "", nil
}

func (v *PartsView) moveAndLoad(ctx context.Context, delta int) error {
	v.selected = moveSelection(v.selected, delta, len(v.parts))
	pn, ok := v.selectedPN()
	if !ok {
		return nil
	}
	p, err := v.store.GetPart(ctx, pn)
	if err != nil {
		return err
	}
	v.detail = p
	return nil
}

func (v *PartsView) editable(f models.PartField) bool {
	return !(v.sub == PartsEditPart && f == models.FieldPartNumber)
}

func (v *PartsView) handleForm(ctx context.Context, msg tea.KeyMsg) (string, error) {
	switch {
	case key.Matches(msg, keys.Cancel):
		v.sub = PartsMain
		focusOnly(v.inputs, -1)
		return "", v.Refresh(ctx)

	case key.Matches(msg, keys.NextField):
		v.focus(v.field.Next())

	case key.Matches(msg, keys.Submit):
		return v.submit(ctx)

	default:
		if v.editable(v.field) {
			v.inputs[v.field].Update(msg)
		}
	}
	return "", nil
}

func (v *PartsView) submit(ctx context.Context) (string, error) {
	p, _ := v.Form()
	p.PartNumber = strings.TrimSpace(p.PartNumber)

	var verb string
	switch v.sub {
	case PartsNewPart:
		if err := v.store.CreatePart(ctx, &p); err != nil {
			return "", err
		}
		verb = "created"
	case PartsEditPart:
		if err := v.store.UpdatePart(ctx, &p); err != nil {
			return "", err
		}
		verb = "updated"
	}

	v.sub = PartsMain
	focusOnly(v.inputs, -1)
	if err := v.Refresh(ctx); err != nil {
		return "", err
	}
	v.selectPN(p.PartNumber)
	return fmt.Sprintf("%s part %s", verb, p.PartNumber), nil
}

// Bindings returns the key hints of the current sub-state.
func (v *PartsView) Bindings() []key.Binding {
	if v.sub != PartsMain {
		return []key.Binding{keys.NextField, keys.Submit, keys.Cancel}
	}
	scroll := []key.Binding{keys.Up, keys.Down}
	if v.showDetails {
		scroll = []key.Binding{withHelp(keys.Up, "scroll"), withHelp(keys.Down, "scroll")}
	}
	return append(scroll, keys.New, keys.Edit, keys.Details, keys.Refresh, keys.Screens, keys.Quit)
}
