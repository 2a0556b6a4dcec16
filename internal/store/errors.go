package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ShayCichocki/shikabom/pkg/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert collides with an existing key.
	ErrDuplicate = errors.New("already exists")
	// ErrEmptyPartNumber is returned when a part has no part number.
	ErrEmptyPartNumber = errors.New("part number is empty")
	// ErrEmptyProjectName is returned when a project has no name.
	ErrEmptyProjectName = errors.New("project name is empty")
	// ErrEmptyLocation is returned when a storage location has no name.
	ErrEmptyLocation = errors.New("location name is empty")
	// ErrInvalidQuantity is returned for a quantity outside its allowed range.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Every Validate helper trims the keys it checks and hands back the trimmed
// value, which is what backends must store and look up.

// ValidatePart checks a part before it is written and trims its part number
// in place.
func ValidatePart(p *models.Part) error {
	if p == nil {
		return ErrEmptyPartNumber
	}
	p.PartNumber = strings.TrimSpace(p.PartNumber)
	if p.PartNumber == "" {
		return ErrEmptyPartNumber
	}
	return nil
}

// ValidateProjectName checks a project name and returns it trimmed.
func ValidateProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyProjectName
	}
	return name, nil
}

// ValidateLocation checks a storage location name and returns it trimmed.
func ValidateLocation(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyLocation
	}
	return name, nil
}

// ValidateComponent checks a BOM line before it is added to a project and
// trims its part number in place.
func ValidateComponent(c *models.ProjectComponent) error {
	c.PartNumber = strings.TrimSpace(c.PartNumber)
	if c.PartNumber == "" {
		return ErrEmptyPartNumber
	}
	if c.Qty <= 0 {
		return fmt.Errorf("%w: qty must be greater than zero, got %d", ErrInvalidQuantity, c.Qty)
	}
	return nil
}

// ValidateStockAdd checks the arguments of an AddStock call and returns the
// trimmed part number and location.
func ValidateStockAdd(pn, location string, qty int64) (string, string, error) {
	pn = strings.TrimSpace(pn)
	if pn == "" {
		return "", "", ErrEmptyPartNumber
	}
	location, err := ValidateLocation(location)
	if err != nil {
		return "", "", err
	}
	if qty <= 0 {
		return "", "", fmt.Errorf("%w: qty must be greater than zero, got %d", ErrInvalidQuantity, qty)
	}
	return pn, location, nil
}

// ValidateStockLevels checks stored stock counters and trims the part number
// in place.
func ValidateStockLevels(l *models.StockLevels) error {
	l.PartNumber = strings.TrimSpace(l.PartNumber)
	if l.PartNumber == "" {
		return ErrEmptyPartNumber
	}
	if l.LowStockThreshold < 0 || l.OnOrder < 0 || l.InProd < 0 {
		return fmt.Errorf("%w: stock counters cannot be negative", ErrInvalidQuantity)
	}
	return nil
}
