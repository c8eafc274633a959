package dto

type ProductFilters struct {
	Category    string `json:"category,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
	SearchQuery string `json:"search,omitempty"`     // name, description, sku
	SortBy      string `json:"sort_by,omitempty"`    // name, price, created_at
	SortOrder   string `json:"sort_order,omitempty"` // asc, desc
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

type CreateProductInput struct {
	ID                 string // optional, derived from Name when empty
	Name               string
	Description        string
	Category           string
	PricePence         int64
	OriginalPricePence *int64
	SKU                string
	StockQuantity      int
	ImageURL           string
	IsActive           *bool
}

// UpdateProductInput leaves stock alone; stock changes go through inventory.
type UpdateProductInput struct {
	ID                 string
	Name               string
	Description        string
	Category           string
	PricePence         int64
	OriginalPricePence *int64
	SKU                string
	ImageURL           string
	IsActive           bool
}

type CreateVariationInput struct {
	ProductID     string
	Weight        string
	PricePence    int64
	SKU           string
	StockQuantity int
}

type UpdateVariationInput struct {
	ID         string
	ProductID  string
	Weight     string
	PricePence int64
	SKU        string
}
