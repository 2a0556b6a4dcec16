package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var stockHeaders = []string{
	"Part Number", "Total Stock", "On Hand", "Available",
	"In Production", "Balance", "Low Stock Threshold", "On Order",
}

func (v *StockView) tableRows() [][]string {
	rows := make([][]string, 0, len(v.rows))
	for _, s := range v.rows {
		rows = append(rows, []string{
			s.PartNumber,
			strconv.FormatInt(s.TotalStock, 10),
			strconv.FormatInt(s.OnHand, 10),
			strconv.FormatInt(s.Available, 10),
			strconv.FormatInt(s.InProd, 10),
			strconv.FormatInt(s.Balance, 10),
			strconv.FormatInt(s.LowStockThreshold, 10),
			strconv.FormatInt(s.OnOrder, 10),
		})
	}
	return rows
}

// View renders the stock screen into the content area.
func (v *StockView) View(l *LayoutManager) string {
	dims := l.CalculateTable(v.showDetails)

	body := renderTable(tableSpec{
		headers:  stockHeaders,
		rows:     v.tableRows(),
		selected: v.selected,
		width:    dims.MainWidth,
		height:   dims.ContentHeight,
		focused:  true,
		rowStyle: func(row int) (lipgloss.Style, bool) {
			if v.rows[row].IsLow() {
				return lowStockCellStyle, true
			}
			return lipgloss.Style{}, false
		},
	})

	if v.showDetails {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, v.detailsView(dims.SideWidth, dims.ContentHeight))
	}

	if v.sub == StockMain {
		return body
	}
	return overlay(body, v.formView(l), l.TotalWidth(), dims.ContentHeight)
}

func (v *StockView) detailsView(width, height int) string {
	var lines []string
	if v.selected >= 0 && v.selected < len(v.rows) {
		s := v.rows[v.selected]
		lines = append(lines, titleStyle.Render(s.PartNumber), "")
		if len(v.detailStorage) == 0 {
			lines = append(lines, mutedStyle.Render("no storage rows"))
		}
		for _, ps := range v.detailStorage {
			lines = append(lines, fmt.Sprintf("%-16s %6d", ps.Location, ps.Quantity))
		}
	} else {
		lines = append(lines, mutedStyle.Render("nothing selected"))
	}
	if limit := height - 2; limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return panelStyle(width, height, false).Render(strings.Join(lines, "\n"))
}

func (v *StockView) formView(l *LayoutManager) string {
	w, _ := l.PopupSize(50, len(v.inputs)+6)
	var fields []formField
	for _, f := range []StockField{StockFieldPartNumber, StockFieldLocation, StockFieldQuantity} {
		fields = append(fields, v.inputs[f].formField(w-18))
	}
	return renderForm("Add Stock", fields, w, mutedStyle.Render("New locations are created on save."))
}
