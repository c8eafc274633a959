package dto

import "time"

type MovementFilters struct {
	ProductID    string
	MovementType string
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	PageSize     int
}

type AdjustStockInput struct {
	ProductID      string
	VariationID    *string
	QuantityChange int
	MovementType   string // adjustment (default) or restock
	Reason         string
	ReferenceID    string
	UserID         string
}

// StockLine is one order line to take out of stock.
type StockLine struct {
	ProductID   string
	VariationID *string
	Quantity    int
}

type StockShortfall struct {
	StockLine
	Available int
}
