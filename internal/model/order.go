package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

const (
	OrderStatusPending    = "Pending"
	OrderStatusPaid       = "Paid"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

const (
	ProviderStripe = "stripe"
	ProviderSquare = "square"
)

var orderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusPaid:       true,
	OrderStatusProcessing: true,
	OrderStatusShipped:    true,
	OrderStatusDelivered:  true,
	OrderStatusCancelled:  true,
}

func IsValidOrderStatus(status string) bool {
	return orderStatuses[status]
}

type Order struct {
	BaseModel
	UserID           *string         `db:"user_id" json:"user_id"`
	GuestEmail       *string         `db:"guest_email" json:"guest_email"`
	SubtotalPence    int64           `db:"subtotal_pence" json:"subtotal_pence"`
	DiscountPence    int64           `db:"discount_pence" json:"discount_pence"`
	ShippingPence    int64           `db:"shipping_pence" json:"shipping_pence"`
	TotalAmountPence int64           `db:"total_amount_pence" json:"total_amount_pence"`
	Status           string          `db:"status" json:"status"`
	ShippingAddress  ShippingAddress `db:"shipping_address" json:"shipping_address"`
	PointsEarned     int             `db:"points_earned" json:"points_earned"`
	PromoCode        *string         `db:"promo_code" json:"promo_code"`
	PaymentProvider  string          `db:"payment_provider" json:"payment_provider"`
	PaymentReference *string         `db:"payment_reference" json:"payment_reference"`
	Items            []OrderItem     `db:"-" json:"items,omitempty"`
}

type OrderItem struct {
	ID          string  `db:"id" json:"id"`
	OrderID     string  `db:"order_id" json:"order_id"`
	ProductID   string  `db:"product_id" json:"product_id"`
	VariationID *string `db:"variation_id" json:"variation_id"`
	Name        string  `db:"name" json:"name"`
	Quantity    int     `db:"quantity" json:"quantity"`
	PricePence  int64   `db:"price_pence" json:"price_pence"`
}

// ShippingAddress is stored as JSONB on the order.
type ShippingAddress struct {
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	Postcode     string `json:"postcode"`
	Country      string `json:"country"`
}

func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *ShippingAddress) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = ShippingAddress{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("shipping_address: unsupported column type")
	}
}
