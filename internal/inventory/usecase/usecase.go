package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lockTTL = 5 * time.Second

// CatalogRefresher is notified after stock changes so listings stay fresh.
type CatalogRefresher interface {
	RefreshProducts(ctx context.Context, ids []string) error
}

type inventoryUseCase struct {
	repo    inventory.Repository
	cache   *cache.RedisClient
	catalog CatalogRefresher
	logger  logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, cache *cache.RedisClient, catalog CatalogRefresher, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:    repo,
		cache:   cache,
		catalog: catalog,
		logger:  log,
	}
}

func lockKey(productID string, variationID *string) string {
	key := fmt.Sprintf("lock:inventory:%s", productID)
	if variationID != nil {
		key += ":" + *variationID
	}
	return key
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.StockMovement, error) {
	if input.QuantityChange == 0 {
		return nil, errx.BadRequest(errors.New("zero change"), "quantity change cannot be zero")
	}
	movementType := input.MovementType
	switch movementType {
	case "":
		movementType = model.MovementAdjustment
	case model.MovementAdjustment, model.MovementRestock:
	default:
		return nil, errx.BadRequest(fmt.Errorf("movement type %q", movementType), "movement type must be adjustment or restock")
	}

	var movement *model.StockMovement
	err := uc.cache.WithLock(ctx, lockKey(input.ProductID, input.VariationID), uuid.New().String(), lockTTL, func() error {
		before, found, err := uc.repo.GetStock(ctx, input.ProductID, input.VariationID)
		if err != nil {
			return err
		}
		if !found {
			return errx.NotFound(inventory.ErrItemNotFound, "product or variation not found")
		}

		after := before + input.QuantityChange
		if after < 0 {
			return errx.New(inventory.ErrInsufficientStock, http.StatusConflict, errx.CodeOutOfStock,
				fmt.Sprintf("only %d in stock", before))
		}

		movement = &model.StockMovement{
			ID:             uuid.New().String(),
			ProductID:      input.ProductID,
			VariationID:    input.VariationID,
			MovementType:   movementType,
			QuantityChange: input.QuantityChange,
			QuantityBefore: before,
			QuantityAfter:  after,
			Reason:         strings.TrimSpace(input.Reason),
			ReferenceID:    optional(input.ReferenceID),
			CreatedBy:      optional(input.UserID),
			CreatedAt:      time.Now(),
		}
		return uc.repo.AdjustStockWithMovement(ctx, movement)
	})
	if errors.Is(err, cache.ErrLocked) || errors.Is(err, inventory.ErrStockChanged) {
		return nil, errx.New(err, http.StatusServiceUnavailable, errx.CodeBusy, "system busy, please try again later")
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("stock adjusted",
		zap.String("product_id", movement.ProductID),
		zap.Int("change", movement.QuantityChange),
		zap.Int("after", movement.QuantityAfter),
	)
	uc.refresh(ctx, []string{movement.ProductID})
	return movement, nil
}

// DecrementForOrder never fails a paid order over stock. Lines that cannot be
// covered are logged as oversold and returned to the caller.
func (uc *inventoryUseCase) DecrementForOrder(ctx context.Context, orderID string, lines []dto.StockLine) ([]dto.StockShortfall, error) {
	shortfalls, err := uc.repo.DecrementForOrder(ctx, orderID, lines)
	if err != nil {
		return nil, err
	}

	for _, s := range shortfalls {
		fields := []zap.Field{
			zap.String("order_id", orderID),
			zap.String("product_id", s.ProductID),
			zap.Int("requested", s.Quantity),
			zap.Int("available", s.Available),
		}
		if s.VariationID != nil {
			fields = append(fields, zap.String("variation_id", *s.VariationID))
		}
		uc.logger.Warn("oversold order line, stock not decremented", fields...)
	}

	// The catalog listener refreshes these products when OrderPaid arrives.
	return shortfalls, nil
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, threshold, page, pageSize int) ([]model.LowStockItem, int, error) {
	if threshold < 0 {
		threshold = 0
	}
	return uc.repo.ListLowStock(ctx, threshold, page, pageSize)
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *inventoryUseCase) refresh(ctx context.Context, ids []string) {
	if uc.catalog == nil || len(ids) == 0 {
		return
	}
	if err := uc.catalog.RefreshProducts(ctx, ids); err != nil {
		uc.logger.Warn("failed to refresh catalog after stock change", zap.Strings("product_ids", ids), zap.Error(err))
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
