package dto

import "time"

type CartItem struct {
	ProductID   string  `json:"product_id"`
	VariationID *string `json:"variation_id,omitempty"`
	Quantity    int     `json:"quantity"`
}

// SameLine reports whether two items refer to the same product and variation.
func (i CartItem) SameLine(productID string, variationID *string) bool {
	if i.ProductID != productID {
		return false
	}
	if i.VariationID == nil || variationID == nil {
		return i.VariationID == nil && variationID == nil
	}
	return *i.VariationID == *variationID
}

// Cart is the server-held cart of a user or a guest cart id.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type QuoteInput struct {
	Items     []CartItem
	PromoCode string
	UserID    string // empty for guests
}

type QuoteLine struct {
	ProductID           string  `json:"product_id"`
	VariationID         *string `json:"variation_id,omitempty"`
	Name                string  `json:"name"`
	Weight              string  `json:"weight,omitempty"`
	ImageURL            *string `json:"image_url,omitempty"`
	Quantity            int     `json:"quantity"`
	UnitPricePence      int64   `json:"unit_price_pence"`
	DiscountedUnitPence int64   `json:"discounted_unit_price_pence"`
	LineTotalPence      int64   `json:"line_total_pence"`
}

// DisplayName is the name stored on order items, e.g. "Sencha (100g)".
func (l QuoteLine) DisplayName() string {
	if l.Weight == "" {
		return l.Name
	}
	return l.Name + " (" + l.Weight + ")"
}

type Quote struct {
	Lines              []QuoteLine `json:"lines"`
	Currency           string      `json:"currency"`
	SubtotalPence      int64       `json:"subtotal_pence"`
	DiscountPence      int64       `json:"discount_pence"`
	ShippingPence      int64       `json:"shipping_pence"`
	TotalPence         int64       `json:"total_pence"`
	PromoCode          string      `json:"promo_code,omitempty"`
	DiscountPercentage int         `json:"discount_percentage,omitempty"`
	PointsEarned       int         `json:"points_earned"`
}
