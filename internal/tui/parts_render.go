package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ShayCichocki/shikabom/pkg/models"
)

var partsHeaders = []string{"Part Number", "Total Qty", "Manufacturer", "Package", "Label", "Value", "Tolerance"}

func (v *PartsView) tableRows() [][]string {
	rows := make([][]string, 0, len(v.parts))
	for _, p := range v.parts {
		rows = append(rows, []string{
			p.PartNumber,
			strconv.FormatInt(p.TotalQty, 10),
			p.Manufacturer,
			p.Package,
			p.Label,
			p.Value,
			p.Tolerance,
		})
	}
	return rows
}

// detailLines builds the content of the details panel, one entry per line.
func (v *PartsView) detailLines() []string {
	if v.detail == nil {
		return nil
	}
	p := v.detail
	lines := []string{
		titleStyle.Render(p.PartNumber),
		"",
		mutedStyle.Render("Description"),
	}
	desc := p.Description
	if desc == "" {
		desc = "-"
	}
	lines = append(lines, desc, "", mutedStyle.Render("Storage"))

	st := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers("Location", "Qty")
	for _, s := range v.detailStorage {
		st.Row(s.Location, strconv.FormatInt(s.Quantity, 10))
	}
	lines = append(lines, strings.Split(st.Render(), "\n")...)

	lines = append(lines, "")
	for _, f := range []models.PartField{
		models.FieldManufacturer,
		models.FieldPackage,
		models.FieldLabel,
		models.FieldValue,
		models.FieldTolerance,
	} {
		val := p.Get(f)
		if val == "" {
			val = "-"
		}
		lines = append(lines, mutedStyle.Render(f.String()+": ")+val)
	}
	lines = append(lines, mutedStyle.Render("Total Qty: ")+strconv.FormatInt(p.TotalQty, 10))
	return lines
}

func (v *PartsView) maxDetailScroll() int {
	n := len(v.detailLines()) - 1
	if n < 0 {
		return 0
	}
	return n
}

// View renders the parts screen into the content area.
func (v *PartsView) View(l *LayoutManager) string {
	dims := l.CalculateTable(v.showDetails)

	body := renderTable(tableSpec{
		headers:  partsHeaders,
		rows:     v.tableRows(),
		selected: v.selected,
		width:    dims.MainWidth,
		height:   dims.ContentHeight,
		focused:  !v.showDetails,
	})

	if v.showDetails {
		lines := v.detailLines()
		start := v.detailScroll
		if start > len(lines) {
			start = len(lines)
		}
		end := start + dims.ContentHeight - 2
		if end > len(lines) {
			end = len(lines)
		}
		if end < start {
			end = start
		}
		details := panelStyle(dims.SideWidth, dims.ContentHeight, true).
			Render(strings.Join(lines[start:end], "\n"))
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, details)
	}

	if v.sub == PartsMain {
		return body
	}
	return overlay(body, v.formView(l), l.TotalWidth(), dims.ContentHeight)
}

func (v *PartsView) formView(l *LayoutManager) string {
	title := "New Part"
	if v.sub == PartsEditPart {
		title = "Edit Part"
	}
	w, _ := l.PopupSize(60, len(v.inputs)+6)
	var fields []formField
	for _, f := range models.PartFields() {
		ff := v.inputs[f].formField(w - 20)
		ff.disabled = !v.editable(f)
		fields = append(fields, ff)
	}
	return renderForm(title, fields, w)
}
