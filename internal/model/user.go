package model

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type UserProfile struct {
	ID            string    `db:"id" json:"id"`
	FullName      *string   `db:"full_name" json:"full_name"`
	LoyaltyPoints int       `db:"loyalty_points" json:"loyalty_points"`
	Role          string    `db:"role" json:"role"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

func (p *UserProfile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

type UserAddress struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	AddressLine1 string    `db:"address_line1" json:"address_line1"`
	AddressLine2 *string   `db:"address_line2" json:"address_line2"`
	City         string    `db:"city" json:"city"`
	Postcode     string    `db:"postcode" json:"postcode"`
	Country      string    `db:"country" json:"country"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
