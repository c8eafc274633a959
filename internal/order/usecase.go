package order

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
)

type UseCase interface {
	// Checkout side
	CreateOrder(ctx context.Context, o *model.Order) error
	GetByPaymentReference(ctx context.Context, provider, reference string) (*model.Order, error)
	MarkPaid(ctx context.Context, id string) (bool, error)

	// Customer side
	ListMyOrders(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int, error)
	GetMyOrder(ctx context.Context, userID, id string) (*model.Order, error)

	// Back office
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Order, error)
	DashboardStats(ctx context.Context) (*dto.DashboardStats, error)
}
