package dto

type OrderFilters struct {
	UserID   *string
	Status   string
	Page     int
	PageSize int
}

type DashboardStats struct {
	TotalOrders       int   `db:"total_orders" json:"total_orders"`
	PendingOrders     int   `db:"pending_orders" json:"pending_orders"`
	TotalCustomers    int   `db:"total_customers" json:"total_customers"`
	TotalProducts     int   `db:"total_products" json:"total_products"`
	TotalRevenuePence int64 `db:"total_revenue_pence" json:"total_revenue_pence"`
}
