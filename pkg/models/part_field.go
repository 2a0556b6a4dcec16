package models

// PartField identifies one editable text attribute of a Part.
type PartField int

const (
	FieldPartNumber PartField = iota
	FieldManufacturer
	FieldPackage
	FieldLabel
	FieldValue
	FieldTolerance
	FieldDescription
)

var partFieldLabels = map[PartField]string{
	FieldPartNumber:   "Part Number",
	FieldManufacturer: "Manufacturer",
	FieldPackage:      "Package",
	FieldLabel:        "Label",
	FieldValue:        "Value",
	FieldTolerance:    "Tolerance",
	FieldDescription:  "Description",
}

// String returns the display label of the field.
func (f PartField) String() string {
	if s, ok := partFieldLabels[f]; ok {
		return s
	}
	return "Unknown"
}

// Next returns the field that follows f in the edit form. The part number
// is only reachable when a form opens, so the cycle wraps to Manufacturer.
func (f PartField) Next() PartField {
	if f >= FieldDescription || f < FieldPartNumber {
		return FieldManufacturer
	}
	return f + 1
}

// PartFields lists every field in form order.
func PartFields() []PartField {
	return []PartField{
		FieldPartNumber,
		FieldManufacturer,
		FieldPackage,
		FieldLabel,
		FieldValue,
		FieldTolerance,
		FieldDescription,
	}
}

// Get returns the text held in field f.
func (p *Part) Get(f PartField) string {
	if ptr := p.fieldPtr(f); ptr != nil {
		return *ptr
	}
	return ""
}

// Set replaces the text held in field f.
func (p *Part) Set(f PartField, v string) {
	if ptr := p.fieldPtr(f); ptr != nil {
		*ptr = v
	}
}

func (p *Part) fieldPtr(f PartField) *string {
	switch f {
	case FieldPartNumber:
		return &p.PartNumber
	case FieldManufacturer:
		return &p.Manufacturer
	case FieldPackage:
		return &p.Package
	case FieldLabel:
		return &p.Label
	case FieldValue:
		return &p.Value
	case FieldTolerance:
		return &p.Tolerance
	case FieldDescription:
		return &p.Description
	}
	return nil
}
