package model

import "time"

const (
	MovementSale       = "sale"
	MovementAdjustment = "adjustment"
	MovementRestock    = "restock"
)

type StockMovement struct {
	ID             string    `db:"id" json:"id"`
	ProductID      string    `db:"product_id" json:"product_id"`
	VariationID    *string   `db:"variation_id" json:"variation_id"`
	MovementType   string    `db:"movement_type" json:"movement_type"`
	QuantityChange int       `db:"quantity_change" json:"quantity_change"`
	QuantityBefore int       `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int       `db:"quantity_after" json:"quantity_after"`
	Reason         string    `db:"reason" json:"reason"`
	ReferenceID    *string   `db:"reference_id" json:"reference_id"`
	CreatedBy      *string   `db:"created_by" json:"created_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// LowStockItem is a product or variation whose stock is at or under a threshold.
type LowStockItem struct {
	ProductID     string  `db:"product_id" json:"product_id"`
	VariationID   *string `db:"variation_id" json:"variation_id"`
	Name          string  `db:"name" json:"name"`
	Weight        *string `db:"weight" json:"weight"`
	SKU           *string `db:"sku" json:"sku"`
	StockQuantity int     `db:"stock_quantity" json:"stock_quantity"`
}
