package model

import "time"

type Coupon struct {
	ID                 string     `db:"id" json:"id"`
	Code               string     `db:"code" json:"code"`
	DiscountPercentage int        `db:"discount_percentage" json:"discount_percentage"`
	Used               bool       `db:"used" json:"used"`
	UsedAt             *time.Time `db:"used_at" json:"used_at"`
	UserID             *string    `db:"user_id" json:"user_id"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}
