package desktop

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/internal/store/memory"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

func newCommands(t *testing.T) (*Commands, *memory.Store, *bytes.Buffer) {
	t.Helper()
	s := memory.New()
	t.Cleanup(func() { _ = s.Close() })
	console := &bytes.Buffer{}
	return NewCommands(s, WithConsole(console)), s, console
}

func invoke(t *testing.T, c *Commands, name, args string) json.RawMessage {
	t.Helper()
	out, err := c.Invoke(context.Background(), name, json.RawMessage(args))
	require.NoError(t, err, "invoke %s", name)
	return out
}

func TestNamesCoverEveryCommand(t *testing.T) {
	c, _, _ := newCommands(t)

	assert.Equal(t, []string{
		"add_new_part", "add_to_bom", "create_project", "fetch_part_data",
		"fetch_project", "fetch_projects", "fetch_stock_data", "fetch_storage_data",
		"get_mfg", "modify_part", "modify_qty", "print_to_console",
		"retrieve_part", "retrieve_qty",
	}, c.Names())
}

func TestEmptyListsEncodeAsArrays(t *testing.T) {
	c, _, _ := newCommands(t)

	for _, name := range []string{"fetch_part_data", "fetch_stock_data", "fetch_projects", "fetch_storage_data"} {
		t.Run(name, func(t *testing.T) {
			assert.JSONEq(t, `[]`, string(invoke(t, c, name, `{}`)))
		})
	}

	invoke(t, c, "create_project", `{"name":"Empty"}`)
	var p struct {
		Parts json.RawMessage `json:"parts"`
	}
	require.NoError(t, json.Unmarshal(invoke(t, c, "fetch_project", `{"name":"Empty"}`), &p))
	assert.JSONEq(t, `[]`, string(p.Parts))
}

func TestPartCommands(t *testing.T) {
	c, _, _ := newCommands(t)

	// inpart as an object
	invoke(t, c, "add_new_part", `{"inpart":{"part_number":"R1","manufacturer":"Yageo","value":"10k"}}`)
	// inpart as a JSON string
	invoke(t, c, "add_new_part", `{"inpart":"{\"part_number\":\"C1\",\"manufacturer\":\"Murata\"}"}`)

	var mfg string
	require.NoError(t, json.Unmarshal(invoke(t, c, "get_mfg", `{"pn":"C1"}`), &mfg))
	assert.Equal(t, "Murata", mfg)

	var parts []models.Part
	require.NoError(t, json.Unmarshal(invoke(t, c, "fetch_part_data", ``), &parts))
	require.Len(t, parts, 2)
	assert.Equal(t, "C1", parts[0].PartNumber)

	invoke(t, c, "modify_part", `{"inpart":{"part_number":"R1","manufacturer":"Vishay"}}`)
	var p models.Part
	require.NoError(t, json.Unmarshal(invoke(t, c, "retrieve_part", `{"pn":"R1"}`), &p))
	assert.Equal(t, "Vishay", p.Manufacturer)
	assert.Empty(t, p.Value, "modify_part rewrites every attribute")
}

func TestQuantityCommands(t *testing.T) {
	c, s, _ := newCommands(t)
	ctx := context.Background()
	require.NoError(t, s.CreatePart(ctx, &models.Part{PartNumber: "R1"}))
	require.NoError(t, s.AddStock(ctx, "R1", "Drawer A", 10))

	var storage []models.PartStorage
	require.NoError(t, json.Unmarshal(invoke(t, c, "fetch_storage_data", `{}`), &storage))
	require.Len(t, storage, 1)
	assert.Equal(t, "Drawer A", storage[0].Location)

	invoke(t, c, "modify_qty", `{"inpart":"{\"part_number\":\"R1\",\"quantity\":42}"}`)
	var q models.PartQty
	require.NoError(t, json.Unmarshal(invoke(t, c, "retrieve_qty", `{"pn":"R1"}`), &q))
	require.NotNil(t, q.Quantity)
	assert.Equal(t, int64(42), *q.Quantity)

	// A null quantity leaves the stored value alone.
	invoke(t, c, "modify_qty", `{"inpart":{"part_number":"R1","quantity":null}}`)
	require.NoError(t, json.Unmarshal(invoke(t, c, "retrieve_qty", `{"pn":"R1"}`), &q))
	assert.Equal(t, int64(42), *q.Quantity)

	var stock []models.StockInfo
	require.NoError(t, json.Unmarshal(invoke(t, c, "fetch_stock_data", `{}`), &stock))
	require.Len(t, stock, 1)
	assert.Equal(t, int64(42), stock[0].OnHand)
}

func TestProjectCommands(t *testing.T) {
	c, s, _ := newCommands(t)
	require.NoError(t, s.CreatePart(context.Background(), &models.Part{PartNumber: "U1", Manufacturer: "TI"}))

	invoke(t, c, "create_project", `{"name":"Widget"}`)
	invoke(t, c, "add_to_bom", `{"project":"Widget","component":{"part_number":"U1","designators":"U1","qty":1}}`)

	var projects []models.Project
	require.NoError(t, json.Unmarshal(invoke(t, c, "fetch_projects", `{}`), &projects))
	require.Len(t, projects, 1)

	var p models.Project
	require.NoError(t, json.Unmarshal(invoke(t, c, "fetch_project", `{"name":"Widget"}`), &p))
	require.Len(t, p.Parts, 1)
	assert.Equal(t, "TI", p.Parts[0].PartInfo.Manufacturer)
}

func TestPrintToConsole(t *testing.T) {
	c, _, console := newCommands(t)

	out := invoke(t, c, "print_to_console", `{"s":"hello"}`)
	assert.JSONEq(t, `null`, string(out))
	assert.Equal(t, "Console: hello\n", console.String())
}

func TestInvokeErrors(t *testing.T) {
	c, _, _ := newCommands(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		command string
		args    string
		want    error
	}{
		{"unknown", "drop_tables", `{}`, ErrUnknownCommand},
		{"malformed args", "get_mfg", `{"pn":`, ErrBadArgs},
		{"missing inpart", "add_new_part", `{}`, ErrBadArgs},
		{"bad inpart string", "add_new_part", `{"inpart":"not json"}`, ErrBadArgs},
		{"empty part number", "add_new_part", `{"inpart":{"part_number":""}}`, store.ErrEmptyPartNumber},
		{"missing part", "retrieve_part", `{"pn":"NOPE"}`, store.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Invoke(ctx, tt.command, json.RawMessage(tt.args))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
