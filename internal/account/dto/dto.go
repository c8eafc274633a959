package dto

import "github.com/fekuna/omnipos-storefront-service/internal/model"

type UpdateProfileInput struct {
	FullName *string `json:"full_name"`
}

type AddressInput struct {
	ID           string  `json:"-"`
	UserID       string  `json:"-"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         string  `json:"city"`
	Postcode     string  `json:"postcode"`
	Country      string  `json:"country"`
}

type CustomerFilters struct {
	Search   string
	Page     int
	PageSize int
}

// Customer is a profile with its order totals for the back office.
type Customer struct {
	model.UserProfile
	OrderCount      int   `db:"order_count" json:"order_count"`
	TotalSpentPence int64 `db:"total_spent_pence" json:"total_spent_pence"`
}

type UpdateCustomerInput struct {
	ID            string  `json:"-"`
	FullName      *string `json:"full_name"`
	LoyaltyPoints *int    `json:"loyalty_points"`
	Role          *string `json:"role"`
}
