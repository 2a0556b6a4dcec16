package store

import (
	"errors"
	"testing"

	"github.com/ShayCichocki/shikabom/pkg/models"
)

func TestValidatePart(t *testing.T) {
	tests := []struct {
		name string
		part *models.Part
		want error
	}{
		{"nil part", nil, ErrEmptyPartNumber},
		{"empty part number", &models.Part{Manufacturer: "TI"}, ErrEmptyPartNumber},
		{"whitespace part number", &models.Part{PartNumber: "  "}, ErrEmptyPartNumber},
		{"valid", &models.Part{PartNumber: "LM358"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePart(tt.part); !errors.Is(err, tt.want) {
				t.Errorf("ValidatePart() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidatePartTrimsInPlace(t *testing.T) {
	p := &models.Part{PartNumber: "  R1\t"}
	if err := ValidatePart(p); err != nil {
		t.Fatalf("ValidatePart() = %v", err)
	}
	if p.PartNumber != "R1" {
		t.Errorf("Expected trimmed part number, got %q", p.PartNumber)
	}
}

func TestValidateComponent(t *testing.T) {
	tests := []struct {
		name string
		c    models.ProjectComponent
		want error
	}{
		{"missing part", models.ProjectComponent{Qty: 1}, ErrEmptyPartNumber},
		{"blank part", models.ProjectComponent{PartNumber: "  ", Qty: 1}, ErrEmptyPartNumber},
		{"zero qty", models.ProjectComponent{PartNumber: "R1"}, ErrInvalidQuantity},
		{"negative qty", models.ProjectComponent{PartNumber: "R1", Qty: -2}, ErrInvalidQuantity},
		{"valid", models.ProjectComponent{PartNumber: " R1 ", Qty: 2}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.c
			if err := ValidateComponent(&c); !errors.Is(err, tt.want) {
				t.Errorf("ValidateComponent() = %v, want %v", err, tt.want)
			}
			if tt.want == nil && c.PartNumber != "R1" {
				t.Errorf("Expected trimmed part number, got %q", c.PartNumber)
			}
		})
	}
}

func TestValidateStockAdd(t *testing.T) {
	tests := []struct {
		name    string
		pn, loc string
		qty     int64
		want    error
	}{
		{"empty pn", "", "Bin A", 1, ErrEmptyPartNumber},
		{"empty location", "R1", "", 1, ErrEmptyLocation},
		{"blank location", "R1", "   ", 1, ErrEmptyLocation},
		{"zero qty", "R1", "Bin A", 0, ErrInvalidQuantity},
		{"valid", " R1", "Bin A ", 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pn, loc, err := ValidateStockAdd(tt.pn, tt.loc, tt.qty)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateStockAdd() = %v, want %v", err, tt.want)
			}
			if tt.want == nil && (pn != "R1" || loc != "Bin A") {
				t.Errorf("Expected trimmed keys, got %q %q", pn, loc)
			}
		})
	}
}

func TestValidateNames(t *testing.T) {
	if _, err := ValidateProjectName(" \t"); !errors.Is(err, ErrEmptyProjectName) {
		t.Errorf("ValidateProjectName(blank) = %v, want %v", err, ErrEmptyProjectName)
	}
	if name, err := ValidateProjectName(" amp "); err != nil || name != "amp" {
		t.Errorf("ValidateProjectName(amp) = %q, %v", name, err)
	}
	if _, err := ValidateLocation("   "); !errors.Is(err, ErrEmptyLocation) {
		t.Errorf("ValidateLocation(blank) = %v, want %v", err, ErrEmptyLocation)
	}
	if name, err := ValidateLocation("Drawer A "); err != nil || name != "Drawer A" {
		t.Errorf("ValidateLocation(Drawer A) = %q, %v", name, err)
	}
}

func TestValidateStockLevels(t *testing.T) {
	if err := ValidateStockLevels(&models.StockLevels{PartNumber: "R1", OnOrder: -1}); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("ValidateStockLevels(negative) = %v, want %v", err, ErrInvalidQuantity)
	}
	l := models.StockLevels{PartNumber: " R1"}
	if err := ValidateStockLevels(&l); err != nil || l.PartNumber != "R1" {
		t.Errorf("ValidateStockLevels(valid) = %v, part %q", err, l.PartNumber)
	}
}
