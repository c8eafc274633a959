package model

import "time"

type Product struct {
	BaseModel
	Name               string             `db:"name" json:"name"`
	Description        *string            `db:"description" json:"description"`
	Category           *string            `db:"category" json:"category"` // category slug, nullable
	PricePence         int64              `db:"price_pence" json:"price_pence"`
	OriginalPricePence *int64             `db:"original_price_pence" json:"original_price_pence"`
	SKU                *string            `db:"sku" json:"sku"`
	StockQuantity      int                `db:"stock_quantity" json:"stock_quantity"`
	ImageURL           *string            `db:"image_url" json:"image_url"`
	IsActive           bool               `db:"is_active" json:"is_active"`
	Variations         []ProductVariation `db:"-" json:"variations,omitempty"`
}

// ProductVariation is a weight option of a product with its own price and stock.
type ProductVariation struct {
	ID            string    `db:"id" json:"id"`
	ProductID     string    `db:"product_id" json:"product_id"`
	Weight        string    `db:"weight" json:"weight"`
	PricePence    int64     `db:"price_pence" json:"price_pence"`
	SKU           *string   `db:"sku" json:"sku"`
	StockQuantity int       `db:"stock_quantity" json:"stock_quantity"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// FindVariation returns nil when the product has no variation with that id.
func (p *Product) FindVariation(id string) *ProductVariation {
	for i := range p.Variations {
		if p.Variations[i].ID == id {
			return &p.Variations[i]
		}
	}
	return nil
}
