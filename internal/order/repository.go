package order

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
)

type Repository interface {
	// CreateWithItems stores the order and its items in one transaction.
	CreateWithItems(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByPaymentReference(ctx context.Context, provider, reference string) (*model.Order, error)
	FindItems(ctx context.Context, orderIDs []string) ([]model.OrderItem, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	// MarkPaid moves a Pending order to Paid; false when it was not Pending.
	MarkPaid(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (*dto.DashboardStats, error)
}
