package inventory

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	// GetStock reports found=false when the product or variation does not exist.
	GetStock(ctx context.Context, productID string, variationID *string) (stock int, found bool, err error)

	// AdjustStockWithMovement sets stock to movement.QuantityAfter and logs the
	// movement in one transaction.
	AdjustStockWithMovement(ctx context.Context, movement *model.StockMovement) error

	// DecrementForOrder applies all lines in one transaction. Lines that would
	// go negative are skipped and returned as shortfalls.
	DecrementForOrder(ctx context.Context, orderID string, lines []dto.StockLine) ([]dto.StockShortfall, error)

	ListLowStock(ctx context.Context, threshold, page, pageSize int) ([]model.LowStockItem, int, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
