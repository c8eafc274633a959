package inventory

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.StockMovement, error)
	DecrementForOrder(ctx context.Context, orderID string, lines []dto.StockLine) ([]dto.StockShortfall, error)
	ListLowStock(ctx context.Context, threshold, page, pageSize int) ([]model.LowStockItem, int, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
