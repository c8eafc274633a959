// Package mocks holds testify mocks of the order interfaces.
package mocks

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) CreateWithItems(ctx context.Context, o *model.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *Repository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *Repository) FindByPaymentReference(ctx context.Context, provider, reference string) (*model.Order, error) {
	args := m.Called(ctx, provider, reference)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *Repository) FindItems(ctx context.Context, orderIDs []string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderIDs)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *Repository) FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	args := m.Called(ctx, filters)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Int(1), args.Error(2)
}

func (m *Repository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) MarkPaid(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*dto.DashboardStats)
	return s, args.Error(1)
}

type UseCase struct {
	mock.Mock
}

func (m *UseCase) CreateOrder(ctx context.Context, o *model.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *UseCase) GetByPaymentReference(ctx context.Context, provider, reference string) (*model.Order, error) {
	args := m.Called(ctx, provider, reference)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *UseCase) MarkPaid(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *UseCase) ListMyOrders(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int, error) {
	args := m.Called(ctx, userID, page, pageSize)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Int(1), args.Error(2)
}

func (m *UseCase) GetMyOrder(ctx context.Context, userID, id string) (*model.Order, error) {
	args := m.Called(ctx, userID, id)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *UseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	args := m.Called(ctx, filters)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Int(1), args.Error(2)
}

func (m *UseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *UseCase) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	args := m.Called(ctx, id, status)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *UseCase) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*dto.DashboardStats)
	return s, args.Error(1)
}
