// Package desktop exposes the store as a set of named commands that take
// and return JSON, the shape the desktop front-end invokes them in.
package desktop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

var (
	// ErrUnknownCommand is returned by Invoke for a name with no handler.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrBadArgs is returned when the arguments cannot be decoded.
	ErrBadArgs = errors.New("invalid arguments")
)

// Handler runs one command. The returned value is encoded as JSON; nil
// encodes as null.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Commands is the command registry.
type Commands struct {
	store    store.Store
	logger   *zap.Logger
	console  io.Writer
	handlers map[string]Handler
}

// CommandsOption configures a Commands.
type CommandsOption func(*Commands)

// WithConsole sets where print_to_console writes. Defaults to stdout.
func WithConsole(w io.Writer) CommandsOption {
	return func(c *Commands) { c.console = w }
}

// WithCommandLogger sets the logger.
func WithCommandLogger(l *zap.Logger) CommandsOption {
	return func(c *Commands) { c.logger = l }
}

// NewCommands registers every command against s.
func NewCommands(s store.Store, opts ...CommandsOption) *Commands {
	c := &Commands{
		store:   s,
		logger:  zap.NewNop(),
		console: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.handlers = map[string]Handler{
		"print_to_console":   c.printToConsole,
		"get_mfg":            c.getMfg,
		"fetch_part_data":    c.fetchPartData,
		"add_new_part":       c.addNewPart,
		"retrieve_part":      c.retrievePart,
		"modify_part":        c.modifyPart,
		"fetch_storage_data": c.fetchStorageData,
		"retrieve_qty":       c.retrieveQty,
		"modify_qty":         c.modifyQty,
		"fetch_stock_data":   c.fetchStockData,
		"fetch_projects":     c.fetchProjects,
		"create_project":     c.createProject,
		"fetch_project":      c.fetchProject,
		"add_to_bom":         c.addToBOM,
	}
	return c
}

// Names returns the registered command names in order.
func (c *Commands) Names() []string {
	names := make([]string, 0, len(c.handlers))
	for name := range c.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is a registered command.
func (c *Commands) Has(name string) bool {
	_, ok := c.handlers[name]
	return ok
}

// Invoke runs the named command with JSON args and returns its JSON result.
func (c *Commands) Invoke(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	h, ok := c.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if len(bytes.TrimSpace(args)) == 0 {
		args = json.RawMessage("{}")
	}

	out, err := h(ctx, args)
	if err != nil {
		c.logger.Warn("command failed", zap.String("command", name), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode %s result: %w", name, err)
	}
	return data, nil
}

func decodeArgs(args json.RawMessage, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadArgs, err)
	}
	return nil
}

// decodeInPart decodes an inpart argument, which the front-end sends
// either as an object or as a JSON document inside a string.
func decodeInPart(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return fmt.Errorf("%w: inpart is required", ErrBadArgs)
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrBadArgs, err)
		}
		raw = []byte(s)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: inpart: %v", ErrBadArgs, err)
	}
	return nil
}

type pnArgs struct {
	PN string `json:"pn"`
}

type inPartArgs struct {
	InPart json.RawMessage `json:"inpart"`
}

type nameArgs struct {
	Name string `json:"name"`
}

func (c *Commands) printToConsole(_ context.Context, args json.RawMessage) (any, error) {
	var a struct {
		S string `json:"s"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	fmt.Fprintf(c.console, "Console: %s\n", a.S)
	return nil, nil
}

func (c *Commands) getMfg(ctx context.Context, args json.RawMessage) (any, error) {
	var a pnArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return c.store.Manufacturer(ctx, a.PN)
}

func (c *Commands) fetchPartData(ctx context.Context, _ json.RawMessage) (any, error) {
	return c.store.ListParts(ctx)
}

func (c *Commands) addNewPart(ctx context.Context, args json.RawMessage) (any, error) {
	var a inPartArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	var p models.Part
	if err := decodeInPart(a.InPart, &p); err != nil {
		return nil, err
	}
	return nil, c.store.CreatePart(ctx, &p)
}

func (c *Commands) retrievePart(ctx context.Context, args json.RawMessage) (any, error) {
	var a pnArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return c.store.GetPart(ctx, a.PN)
}

func (c *Commands) modifyPart(ctx context.Context, args json.RawMessage) (any, error) {
	var a inPartArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	var p models.Part
	if err := decodeInPart(a.InPart, &p); err != nil {
		return nil, err
	}
	return nil, c.store.UpdatePart(ctx, &p)
}

func (c *Commands) fetchStorageData(ctx context.Context, _ json.RawMessage) (any, error) {
	return c.store.ListStorage(ctx)
}

func (c *Commands) retrieveQty(ctx context.Context, args json.RawMessage) (any, error) {
	var a pnArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return c.store.GetQuantity(ctx, a.PN)
}

func (c *Commands) modifyQty(ctx context.Context, args json.RawMessage) (any, error) {
	var a inPartArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	var q models.PartQty
	if err := decodeInPart(a.InPart, &q); err != nil {
		return nil, err
	}
	return nil, c.store.SetQuantity(ctx, q)
}

func (c *Commands) fetchStockData(ctx context.Context, _ json.RawMessage) (any, error) {
	return c.store.ListStock(ctx)
}

func (c *Commands) fetchProjects(ctx context.Context, _ json.RawMessage) (any, error) {
	return c.store.ListProjects(ctx)
}

func (c *Commands) createProject(ctx context.Context, args json.RawMessage) (any, error) {
	var a nameArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return nil, c.store.CreateProject(ctx, a.Name)
}

func (c *Commands) fetchProject(ctx context.Context, args json.RawMessage) (any, error) {
	var a nameArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return c.store.GetProject(ctx, a.Name)
}

func (c *Commands) addToBOM(ctx context.Context, args json.RawMessage) (any, error) {
	var a struct {
		Project   string                  `json:"project"`
		Component models.ProjectComponent `json:"component"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return nil, c.store.AddComponent(ctx, a.Project, a.Component)
}
