package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/order/mocks"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const orderID = "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"

func strPtr(s string) *string { return &s }

func TestCreateOrder_AssignsIDs(t *testing.T) {
	repo := new(mocks.Repository)
	uc := NewOrderUseCase(repo, logger.NewNop())
	o := &model.Order{Items: []model.OrderItem{{ProductID: "sencha"}, {ProductID: "chai"}}}

	repo.On("CreateWithItems", mock.Anything, o).Return(nil)

	require.NoError(t, uc.CreateOrder(context.Background(), o))
	assert.NotEmpty(t, o.ID)
	assert.False(t, o.CreatedAt.IsZero())
	for _, it := range o.Items {
		assert.NotEmpty(t, it.ID)
		assert.Equal(t, o.ID, it.OrderID)
	}
	assert.NotEqual(t, o.Items[0].ID, o.Items[1].ID)
}

func TestGetMyOrder_HidesOtherCustomers(t *testing.T) {
	repo := new(mocks.Repository)
	uc := NewOrderUseCase(repo, logger.NewNop())
	ctx := context.Background()

	repo.On("FindByID", ctx, orderID).Return(&model.Order{BaseModel: model.BaseModel{ID: orderID}, UserID: strPtr("owner")}, nil)
	repo.On("FindItems", ctx, []string{orderID}).Return([]model.OrderItem{{OrderID: orderID, Name: "Sencha"}}, nil)

	o, err := uc.GetMyOrder(ctx, "owner", orderID)
	require.NoError(t, err)
	require.Len(t, o.Items, 1)

	_, err = uc.GetMyOrder(ctx, "intruder", orderID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	assert.Equal(t, http.StatusNotFound, errx.From(err).Status)
}

func TestGetOrder_NonUUIDIsNotFound(t *testing.T) {
	repo := new(mocks.Repository)
	uc := NewOrderUseCase(repo, logger.NewNop())

	_, err := uc.GetOrder(context.Background(), "42")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestListMyOrders_AttachesItems(t *testing.T) {
	repo := new(mocks.Repository)
	uc := NewOrderUseCase(repo, logger.NewNop())
	ctx := context.Background()

	repo.On("FindAll", ctx, mock.MatchedBy(func(f *dto.OrderFilters) bool {
		return f.UserID != nil && *f.UserID == "u1" && f.Page == 1 && f.PageSize == 10
	})).Return([]model.Order{
		{BaseModel: model.BaseModel{ID: "a"}},
		{BaseModel: model.BaseModel{ID: "b"}},
	}, 2, nil)
	repo.On("FindItems", ctx, []string{"a", "b"}).Return([]model.OrderItem{
		{OrderID: "a", Name: "Sencha"},
		{OrderID: "b", Name: "Chai"},
		{OrderID: "b", Name: "Matcha"},
	}, nil)

	orders, total, err := uc.ListMyOrders(ctx, "u1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, orders[0].Items, 1)
	assert.Len(t, orders[1].Items, 2)
}

func TestUpdateStatus(t *testing.T) {
	repo := new(mocks.Repository)
	uc := NewOrderUseCase(repo, logger.NewNop())
	ctx := context.Background()

	_, err := uc.UpdateStatus(ctx, orderID, "Lost")
	assert.ErrorIs(t, err, order.ErrInvalidStatus)

	repo.On("UpdateStatus", ctx, orderID, model.OrderStatusShipped).Return(true, nil)
	repo.On("FindByID", ctx, orderID).Return(&model.Order{BaseModel: model.BaseModel{ID: orderID}, Status: model.OrderStatusShipped}, nil)
	repo.On("FindItems", ctx, []string{orderID}).Return([]model.OrderItem{}, nil)

	o, err := uc.UpdateStatus(ctx, orderID, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, o.Status)
}

func TestListOrders_RejectsUnknownStatus(t *testing.T) {
	uc := NewOrderUseCase(new(mocks.Repository), logger.NewNop())
	_, _, err := uc.ListOrders(context.Background(), &dto.OrderFilters{Status: "paid"})
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}
