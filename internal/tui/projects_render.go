package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var bomHeaders = []string{"Part Number", "Designator(s)", "Qty", "Value", "Tolerance", "Package", "Label", "MFG"}

func (v *ProjectsView) bomRows() [][]string {
	if v.current == nil {
		return nil
	}
	rows := make([][]string, 0, len(v.current.Parts))
	for _, c := range v.current.Parts {
		rows = append(rows, []string{
			c.PartNumber,
			c.Designators,
			strconv.FormatInt(c.Qty, 10),
			c.PartInfo.Value,
			c.PartInfo.Tolerance,
			c.PartInfo.Package,
			c.PartInfo.Label,
			c.PartInfo.Manufacturer,
		})
	}
	return rows
}

// View renders the projects screen into the content area.
func (v *ProjectsView) View(l *LayoutManager) string {
	dims := l.CalculateProjects()

	list := v.listView(dims.SideWidth, dims.ContentHeight)

	bom := renderTable(tableSpec{
		headers:  bomHeaders,
		rows:     v.bomRows(),
		selected: v.bomCursor,
		width:    dims.MainWidth,
		height:   dims.ContentHeight - 1,
		focused:  v.sub == ProjectsBOM || v.sub == ProjectsAddToBOM,
	})
	title := mutedStyle.Render("no project loaded")
	if v.current != nil {
		title = titleStyle.Render(v.current.Name) +
			mutedStyle.Render(fmt.Sprintf("%d lines, %d placements", len(v.current.Parts), v.current.TotalPlacements()))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, lipgloss.JoinVertical(lipgloss.Left, title, bom))

	switch v.sub {
	case ProjectsCreate:
		return overlay(body, v.createView(l), l.TotalWidth(), dims.ContentHeight)
	case ProjectsAddToBOM:
		return overlay(body, v.addToBOMView(l), l.TotalWidth(), dims.ContentHeight)
	}
	return body
}

func (v *ProjectsView) listView(width, height int) string {
	visible := height - 3 // border + position line
	if visible < 1 {
		visible = 1
	}
	start := scrollWindow(v.listCursor, len(v.projects), visible)
	end := start + visible
	if end > len(v.projects) {
		end = len(v.projects)
	}

	var lines []string
	for i := start; i < end; i++ {
		name := v.projects[i].Name
		marker := "  "
		if i == v.loaded {
			marker = "● "
		}
		line := marker + name
		if i == v.listCursor {
			line = selectedCellStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(v.projects) == 0 {
		lines = append(lines, mutedStyle.Render("no projects"))
	}
	for len(lines) < visible {
		lines = append(lines, "")
	}
	lines = append(lines, mutedStyle.Render(scrollPosition(v.listCursor, len(v.projects))))

	focused := v.sub == ProjectsList || v.sub == ProjectsCreate
	return panelStyle(width, height, focused).Render(strings.Join(lines, "\n"))
}

// scrollPosition renders "cursor/total" for the list scrollbar.
func scrollPosition(cursor, total int) string {
	if total == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", cursor+1, total)
}

func (v *ProjectsView) createView(l *LayoutManager) string {
	w, _ := l.PopupSize(44, 6)
	return renderForm("New Project", []formField{v.name.formField(w - 12)}, w)
}

func (v *ProjectsView) addToBOMView(l *LayoutManager) string {
	w, h := l.PopupSize(56, 18)

	listHeight := h - 10
	if listHeight < 3 {
		listHeight = 3
	}
	start := scrollWindow(v.candCursor, len(v.candidates), listHeight)
	end := start + listHeight
	if end > len(v.candidates) {
		end = len(v.candidates)
	}
	var parts []string
	for i := start; i < end; i++ {
		line := "  " + v.candidates[i]
		if i == v.candCursor {
			line = selectedCellStyle.Render("> " + v.candidates[i])
		}
		parts = append(parts, line)
	}
	if len(v.candidates) == 0 {
		parts = append(parts, mutedStyle.Render("every part is already on this BOM"))
	}

	pnLabel := mutedStyle.Render("PN")
	if v.bomField == BOMFieldPartNumber {
		pnLabel = activeFieldStyle.Render("PN")
	}
	name := ""
	if v.current != nil {
		name = v.current.Name
	}

	return renderForm("Add to "+name, []formField{
		v.bomInputs[BOMFieldDesignators].formField(w - 20),
		v.bomInputs[BOMFieldQty].formField(w - 20),
	}, w, append([]string{pnLabel}, parts...)...)
}
