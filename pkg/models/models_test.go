package models

import "testing"

func TestNewStockInfo_Derived(t *testing.T) {
	tests := []struct {
		name          string
		levels        StockLevels
		onHand        int64
		wantTotal     int64
		wantAvailable int64
		wantBalance   int64
		wantLow       bool
	}{
		{
			name:          "healthy stock",
			levels:        StockLevels{PartNumber: "R1", LowStockThreshold: 10, OnOrder: 5, InProd: 20},
			onHand:        100,
			wantTotal:     105,
			wantAvailable: 80,
			wantBalance:   70,
		},
		{
			name:          "below threshold",
			levels:        StockLevels{PartNumber: "C1", LowStockThreshold: 50, InProd: 10},
			onHand:        40,
			wantTotal:     40,
			wantAvailable: 30,
			wantBalance:   -20,
			wantLow:       true,
		},
		{
			name:          "zero everything",
			levels:        StockLevels{PartNumber: "U1"},
			wantTotal:     0,
			wantAvailable: 0,
			wantBalance:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewStockInfo(tt.levels, tt.onHand)
			if got.PartNumber != tt.levels.PartNumber {
				t.Errorf("PartNumber = %q, want %q", got.PartNumber, tt.levels.PartNumber)
			}
			if got.TotalStock != tt.wantTotal {
				t.Errorf("TotalStock = %d, want %d", got.TotalStock, tt.wantTotal)
			}
			if got.Available != tt.wantAvailable {
				t.Errorf("Available = %d, want %d", got.Available, tt.wantAvailable)
			}
			if got.Balance != tt.wantBalance {
				t.Errorf("Balance = %d, want %d", got.Balance, tt.wantBalance)
			}
			if got.IsLow() != tt.wantLow {
				t.Errorf("IsLow() = %v, want %v", got.IsLow(), tt.wantLow)
			}
		})
	}
}

func TestProject_TotalPlacementsAndHasPart(t *testing.T) {
	p := Project{
		Name: "amp",
		Parts: []ProjectComponent{
			{PartNumber: "R1", Designators: "R1, R2", Qty: 2},
			{PartNumber: "C1", Designators: "C4", Qty: 1},
		},
	}

	if got := p.TotalPlacements(); got != 3 {
		t.Errorf("TotalPlacements() = %d, want 3", got)
	}
	if !p.HasPart("C1") {
		t.Error("HasPart(C1) = false, want true")
	}
	if p.HasPart("U7") {
		t.Error("HasPart(U7) = true, want false")
	}

	var empty Project
	if got := empty.TotalPlacements(); got != 0 {
		t.Errorf("empty TotalPlacements() = %d, want 0", got)
	}
}
