package models

// Project is a named bill of materials.
type Project struct {
	Name  string             `json:"name" yaml:"name"`
	Parts []ProjectComponent `json:"parts" yaml:"parts"`
}

// ProjectComponent is one BOM line: a part placed at one or more designators.
type ProjectComponent struct {
	PartNumber  string `json:"part_number" yaml:"part_number"`
	Designators string `json:"designators" yaml:"designators"`
	Qty         int64  `json:"qty" yaml:"qty"`
	// PartInfo is the joined part row, filled when a project is fetched.
	PartInfo Part `json:"part_info" yaml:"-"`
}

// TotalPlacements returns the sum of quantities over all BOM lines.
func (p *Project) TotalPlacements() int64 {
	var total int64
	for _, c := range p.Parts {
		total += c.Qty
	}
	return total
}

// HasPart reports whether pn already appears on the BOM.
func (p *Project) HasPart(pn string) bool {
	for _, c := range p.Parts {
		if c.PartNumber == pn {
			return true
		}
	}
	return false
}
