// Package mocks holds testify mocks of the inventory interfaces.
package mocks

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) GetStock(ctx context.Context, productID string, variationID *string) (int, bool, error) {
	args := m.Called(ctx, productID, variationID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *Repository) AdjustStockWithMovement(ctx context.Context, movement *model.StockMovement) error {
	return m.Called(ctx, movement).Error(0)
}

func (m *Repository) DecrementForOrder(ctx context.Context, orderID string, lines []dto.StockLine) ([]dto.StockShortfall, error) {
	args := m.Called(ctx, orderID, lines)
	s, _ := args.Get(0).([]dto.StockShortfall)
	return s, args.Error(1)
}

func (m *Repository) ListLowStock(ctx context.Context, threshold, page, pageSize int) ([]model.LowStockItem, int, error) {
	args := m.Called(ctx, threshold, page, pageSize)
	items, _ := args.Get(0).([]model.LowStockItem)
	return items, args.Int(1), args.Error(2)
}

func (m *Repository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.StockMovement)
	return items, args.Int(1), args.Error(2)
}

type UseCase struct {
	mock.Mock
}

func (m *UseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.StockMovement, error) {
	args := m.Called(ctx, input)
	mv, _ := args.Get(0).(*model.StockMovement)
	return mv, args.Error(1)
}

func (m *UseCase) DecrementForOrder(ctx context.Context, orderID string, lines []dto.StockLine) ([]dto.StockShortfall, error) {
	args := m.Called(ctx, orderID, lines)
	s, _ := args.Get(0).([]dto.StockShortfall)
	return s, args.Error(1)
}

func (m *UseCase) ListLowStock(ctx context.Context, threshold, page, pageSize int) ([]model.LowStockItem, int, error) {
	args := m.Called(ctx, threshold, page, pageSize)
	items, _ := args.Get(0).([]model.LowStockItem)
	return items, args.Int(1), args.Error(2)
}

func (m *UseCase) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.StockMovement)
	return items, args.Int(1), args.Error(2)
}
