package models

// Part represents an inventory item keyed by its part number.
type Part struct {
	// PartNumber is the unique key of the part. It can never be empty.
	PartNumber string `json:"part_number" yaml:"part_number"`
	// TotalQty is the sum of quantities across all storage locations.
	// It is derived by the store and ignored on insert/update.
	TotalQty int64 `json:"total_qty" yaml:"-"`
	// Manufacturer is the part's maker.
	Manufacturer string `json:"manufacturer" yaml:"manufacturer,omitempty"`
	// Description is free-form text about the part.
	Description string `json:"description" yaml:"description,omitempty"`
	// Label is the short name printed on the storage bin.
	Label string `json:"label" yaml:"label,omitempty"`
	// Package is the physical package (e.g. 0603, SOIC-8).
	Package string `json:"package" yaml:"package,omitempty"`
	// Value is the electrical value (e.g. 10k, 4.7uF).
	Value string `json:"value" yaml:"value,omitempty"`
	// Tolerance is the value tolerance (e.g. 1%).
	Tolerance string `json:"tolerance" yaml:"tolerance,omitempty"`
}

// PartStorage is the quantity of a part held at one storage location.
type PartStorage struct {
	PartNumber string `json:"part_number"`
	Location   string `json:"location"`
	LocationID string `json:"loc_id"`
	Quantity   int64  `json:"quantity"`
}

// StorageLocation is a named place where parts are kept.
type StorageLocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PartQty carries a quantity update for a part. A nil Quantity means
// "leave the stored value unchanged".
type PartQty struct {
	PartNumber string `json:"part_number"`
	Quantity   *int64 `json:"quantity"`
}
