package models

// StockLevels holds the per-part counters that are stored rather than derived.
type StockLevels struct {
	PartNumber        string `json:"part_number" yaml:"part_number"`
	LowStockThreshold int64  `json:"low_stock_threshold" yaml:"low_stock_threshold"`
	OnOrder           int64  `json:"on_order" yaml:"on_order"`
	InProd            int64  `json:"in_prod" yaml:"in_prod"`
}

// StockInfo is the aggregate stock picture of a stocked part.
// Nothing in it can be null.
type StockInfo struct {
	PartNumber        string `json:"part_number"`
	LowStockThreshold int64  `json:"low_stock_threshold"`
	OnHand            int64  `json:"on_hand"`
	OnOrder           int64  `json:"on_order"`
	InProd            int64  `json:"in_prod"`
	TotalStock        int64  `json:"total_stock"`
	Balance           int64  `json:"balance"`
	Available         int64  `json:"available"`
}

// NewStockInfo builds a StockInfo from stored levels and the on-hand quantity,
// filling in the derived counters.
func NewStockInfo(levels StockLevels, onHand int64) StockInfo {
	s := StockInfo{
		PartNumber:        levels.PartNumber,
		LowStockThreshold: levels.LowStockThreshold,
		OnHand:            onHand,
		OnOrder:           levels.OnOrder,
		InProd:            levels.InProd,
	}
	s.Derive()
	return s
}

// Derive recomputes TotalStock, Available and Balance from the base counters.
func (s *StockInfo) Derive() {
	s.TotalStock = s.OnHand + s.OnOrder
	s.Available = s.OnHand - s.InProd
	s.Balance = s.Available - s.LowStockThreshold
}

// IsLow reports whether the part is below its low stock threshold.
func (s StockInfo) IsLow() bool {
	return s.Balance < 0
}
