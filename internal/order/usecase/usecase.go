package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type orderUseCase struct {
	repo   order.Repository
	logger logger.ZapLogger
}

func NewOrderUseCase(repo order.Repository, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, o *model.Order) error {
	now := time.Now().UTC()
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	o.CreatedAt = now
	o.UpdatedAt = now
	for i := range o.Items {
		o.Items[i].ID = uuid.New().String()
		o.Items[i].OrderID = o.ID
	}

	if err := uc.repo.CreateWithItems(ctx, o); err != nil {
		uc.logger.Error("failed to create order", zap.String("order_id", o.ID), zap.Error(err))
		return err
	}
	return nil
}

func (uc *orderUseCase) GetByPaymentReference(ctx context.Context, provider, reference string) (*model.Order, error) {
	o, err := uc.repo.FindByPaymentReference(ctx, provider, reference)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, errx.NotFound(order.ErrOrderNotFound, "order not found")
	}
	return o, uc.attachItems(ctx, []*model.Order{o})
}

func (uc *orderUseCase) MarkPaid(ctx context.Context, id string) (bool, error) {
	return uc.repo.MarkPaid(ctx, id)
}

func (uc *orderUseCase) ListMyOrders(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int, error) {
	return uc.ListOrders(ctx, &dto.OrderFilters{UserID: &userID, Page: page, PageSize: pageSize})
}

// GetMyOrder hides other customers' orders behind a plain not found.
func (uc *orderUseCase) GetMyOrder(ctx context.Context, userID, id string) (*model.Order, error) {
	o, err := uc.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID == nil || *o.UserID != userID {
		return nil, errx.NotFound(order.ErrOrderNotFound, "order not found")
	}
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	if filters.Status != "" && !model.IsValidOrderStatus(filters.Status) {
		return nil, 0, errx.BadRequest(order.ErrInvalidStatus, fmt.Sprintf("unknown status %q", filters.Status))
	}
	orders, total, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	refs := make([]*model.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := uc.attachItems(ctx, refs); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	// order ids are UUIDs; anything else cannot exist
	if _, err := uuid.Parse(id); err != nil {
		return nil, errx.NotFound(order.ErrOrderNotFound, "order not found")
	}
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, errx.NotFound(order.ErrOrderNotFound, "order not found")
	}
	return o, uc.attachItems(ctx, []*model.Order{o})
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	if !model.IsValidOrderStatus(status) {
		return nil, errx.BadRequest(order.ErrInvalidStatus, fmt.Sprintf("unknown status %q", status))
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, errx.NotFound(order.ErrOrderNotFound, "order not found")
	}
	ok, err := uc.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errx.NotFound(order.ErrOrderNotFound, "order not found")
	}
	uc.logger.Info("order status updated", zap.String("order_id", id), zap.String("status", status))
	return uc.GetOrder(ctx, id)
}

func (uc *orderUseCase) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	return uc.repo.Stats(ctx)
}

func (uc *orderUseCase) attachItems(ctx context.Context, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*model.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Items = []model.OrderItem{}
	}

	items, err := uc.repo.FindItems(ctx, ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return nil
}
