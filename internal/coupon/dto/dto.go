package dto

type CouponFilters struct {
	Used     *bool
	Page     int
	PageSize int
}

type CreateCouponInput struct {
	Code               string
	DiscountPercentage int
}
