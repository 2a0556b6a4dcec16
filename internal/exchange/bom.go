package exchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ShayCichocki/shikabom/pkg/models"
)

// BOM formats.
const (
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

var bomColumns = []string{
	"Part Number", "Designator(s)", "Qty", "Value", "Tolerance",
	"Package", "Label", "MFG", "Description",
}

// bomLine is the YAML shape of one BOM line with its part attributes inlined.
type bomLine struct {
	PartNumber   string `yaml:"part_number"`
	Designators  string `yaml:"designators,omitempty"`
	Qty          int64  `yaml:"qty"`
	Value        string `yaml:"value,omitempty"`
	Tolerance    string `yaml:"tolerance,omitempty"`
	Package      string `yaml:"package,omitempty"`
	Label        string `yaml:"label,omitempty"`
	Manufacturer string `yaml:"manufacturer,omitempty"`
	Description  string `yaml:"description,omitempty"`
}

type bomDoc struct {
	Project    string    `yaml:"project"`
	Placements int64     `yaml:"placements"`
	Lines      []bomLine `yaml:"lines"`
}

// FormatFromName guesses the BOM format from a file name.
func FormatFromName(name string) string {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatCSV
}

// WriteBOM writes the BOM of p in the given format.
func WriteBOM(w io.Writer, p *models.Project, format string) error {
	switch format {
	case FormatCSV:
		return WriteBOMCSV(w, p)
	case FormatYAML:
		return WriteBOMYAML(w, p)
	}
	return fmt.Errorf("unknown bom format %q", format)
}

// WriteBOMCSV writes one header row and one row per BOM line.
func WriteBOMCSV(w io.Writer, p *models.Project) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(bomColumns); err != nil {
		return fmt.Errorf("write bom header: %w", err)
	}
	for _, c := range p.Parts {
		info := c.PartInfo
		row := []string{
			c.PartNumber, c.Designators, strconv.FormatInt(c.Qty, 10), info.Value, info.Tolerance,
			info.Package, info.Label, info.Manufacturer, info.Description,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write bom line %s: %w", c.PartNumber, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBOMYAML writes the BOM as a YAML document.
func WriteBOMYAML(w io.Writer, p *models.Project) error {
	doc := bomDoc{Project: p.Name, Placements: p.TotalPlacements()}
	for _, c := range p.Parts {
		info := c.PartInfo
		doc.Lines = append(doc.Lines, bomLine{
			PartNumber:   c.PartNumber,
			Designators:  c.Designators,
			Qty:          c.Qty,
			Value:        info.Value,
			Tolerance:    info.Tolerance,
			Package:      info.Package,
			Label:        info.Label,
			Manufacturer: info.Manufacturer,
			Description:  info.Description,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode bom: %w", err)
	}
	return enc.Close()
}
