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

// StockSubState is the modal mode of the stock screen.
type StockSubState int

const (
	StockMain StockSubState = iota
	StockCreate
)

// String returns a short name for the sub-state.
func (s StockSubState) String() string {
	switch s {
	case StockMain:
		return "main"
	case StockCreate:
		return "create stock"
	default:
		return "unknown"
	}
}

// StockField identifies an input of the create-stock form.
type StockField int

const (
	StockFieldPartNumber StockField = iota
	StockFieldLocation
	StockFieldQuantity
)

// String returns the label of the field.
func (f StockField) String() string {
	switch f {
	case StockFieldPartNumber:
		return "Part Number"
	case StockFieldLocation:
		return "Location"
	case StockFieldQuantity:
		return "Quantity"
	default:
		return "Unknown"
	}
}

// Next returns the following field, wrapping to the part number.
func (f StockField) Next() StockField {
	if f >= StockFieldQuantity {
		return StockFieldPartNumber
	}
	return f + 1
}

var errQuantityRequired = errors.New("quantity must be a whole number greater than zero")

// StockView is the state of the stock screen.
type StockView struct {
	store store.Store
	now   func() time.Time

	sub      StockSubState
	rows     []models.StockInfo
	selected int

	showDetails   bool
	detailStorage []models.PartStorage

	inputs map[StockField]*textField
	field  StockField

	refreshed time.Time
}

// NewStockView creates the stock screen with nothing selected.
func NewStockView(s store.Store) *StockView {
	qty := newTextField(StockFieldQuantity.String())
	qty.input.Validate = digitsOnly
	return &StockView{
		store:    s,
		now:      time.Now,
		selected: -1,
		inputs: map[StockField]*textField{
			StockFieldPartNumber: newTextField(StockFieldPartNumber.String()),
			StockFieldLocation:   newTextField(StockFieldLocation.String()),
			StockFieldQuantity:   qty,
		},
	}
}

// SubState returns the current sub-state.
func (v *StockView) SubState() StockSubState { return v.sub }

// Typing reports whether keys are consumed as text.
func (v *StockView) Typing() bool { return v.sub == StockCreate }

// Rows returns the stocked parts currently shown.
func (v *StockView) Rows() []models.StockInfo { return v.rows }

// Selected returns the selected row index, or -1.
func (v *StockView) Selected() int { return v.selected }

// Details reports whether the storage breakdown is open.
func (v *StockView) Details() bool { return v.showDetails }

// Field returns the active form field.
func (v *StockView) Field() StockField { return v.field }

// Input returns the text entered in form field f.
func (v *StockView) Input(f StockField) string {
	if in, ok := v.inputs[f]; ok {
		return in.Value()
	}
	return ""
}

func (v *StockView) focus(f StockField) {
	v.field = f
	focusOnly(v.inputs, f)
}

// Refreshed returns when the rows were last fetched.
func (v *StockView) Refreshed() time.Time { return v.refreshed }

// Refresh re-fetches every stocked part.
func (v *StockView) Refresh(ctx context.Context) error {
	rows, err := v.store.ListStock(ctx)
	if err != nil {
		return fmt.Errorf("refresh stock: %w", err)
	}
	v.rows = rows
	v.selected = clampSelection(v.selected, len(rows))
	v.refreshed = v.now()
	if v.showDetails {
		return v.loadStorage(ctx)
	}
	return nil
}

func (v *StockView) loadStorage(ctx context.Context) error {
	if v.selected < 0 || v.selected >= len(v.rows) {
		v.detailStorage = nil
		return nil
	}
	storage, err := v.store.ListPartStorage(ctx, v.rows[v.selected].PartNumber)
	if err != nil {
		return err
	}
	v.detailStorage = storage
	return nil
}

// HandleKey applies one key press and returns a status message.
func (v *StockView) HandleKey(ctx context.Context, msg tea.KeyMsg) (string, error) {
	if v.sub == StockCreate {
		return v.handleCreate(ctx, msg)
	}

	switch {
	case key.Matches(msg, keys.Details):
		v.showDetails = !v.showDetails
		if v.showDetails {
			return "", v.loadStorage(ctx)
		}

	case key.Matches(msg, keys.Down):
		v.selected = moveSelection(v.selected, 1, len(v.rows))
		if v.showDetails {
			return "", v.loadStorage(ctx)
		}

	case key.Matches(msg, keys.Up):
		v.selected = moveSelection(v.selected, -1, len(v.rows))
		if v.showDetails {
			return "", v.loadStorage(ctx)
		}

	case key.Matches(msg, keys.Refresh):
		if err := v.Refresh(ctx); err != nil {
			return "", err
		}
		return "stock refreshed", nil

	case key.Matches(msg, keys.Create):
		for _, in := range v.inputs {
			in.Reset()
		}
		v.focus(StockFieldPartNumber)
		v.sub = StockCreate
	}
	return "", nil
}

func (v *StockView) handleCreate(ctx context.Context, msg tea.KeyMsg) (string, error) {
	switch {
	case key.Matches(msg, keys.Cancel):
		v.sub = StockMain
		focusOnly(v.inputs, -1)

	case key.Matches(msg, keys.NextField):
		v.focus(v.field.Next())

	case key.Matches(msg, keys.Submit):
		return v.submit(ctx)

	default:
		v.inputs[v.field].Update(msg)
	}
	return "", nil
}

func (v *StockView) submit(ctx context.Context) (string, error) {
	pn := strings.TrimSpace(v.Input(StockFieldPartNumber))
	loc := strings.TrimSpace(v.Input(StockFieldLocation))
	qty, err := strconv.ParseInt(v.Input(StockFieldQuantity), 10, 64)
	if err != nil || qty <= 0 {
		return "", errQuantityRequired
	}
	if err := v.store.AddStock(ctx, pn, loc, qty); err != nil {
		return "", err
	}

	v.sub = StockMain
	focusOnly(v.inputs, -1)
	if err := v.Refresh(ctx); err != nil {
		return "", err
	}
	for i, r := range v.rows {
		if r.PartNumber == pn {
			v.selected = i
			break
		}
	}
	return fmt.Sprintf("added %d of %s at %s", qty, pn, loc), nil
}

// Bindings returns the key hints of the current sub-state.
func (v *StockView) Bindings() []key.Binding {
	if v.sub == StockCreate {
		return []key.Binding{keys.NextField, keys.Submit, keys.Cancel}
	}
	return []key.Binding{keys.Up, keys.Down, keys.Details, withHelp(keys.Create, "add stock"), keys.Refresh, keys.Screens, keys.Quit}
}
