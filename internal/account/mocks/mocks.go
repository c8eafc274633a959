// Package mocks holds testify mocks of the account interfaces.
package mocks

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/account/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) FindProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*model.UserProfile)
	return p, args.Error(1)
}

func (m *Repository) EnsureProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*model.UserProfile)
	return p, args.Error(1)
}

func (m *Repository) UpdateFullName(ctx context.Context, userID string, fullName *string) (*model.UserProfile, error) {
	args := m.Called(ctx, userID, fullName)
	p, _ := args.Get(0).(*model.UserProfile)
	return p, args.Error(1)
}

func (m *Repository) UpdateCustomer(ctx context.Context, input *dto.UpdateCustomerInput) (*model.UserProfile, error) {
	args := m.Called(ctx, input)
	p, _ := args.Get(0).(*model.UserProfile)
	return p, args.Error(1)
}

func (m *Repository) AddLoyaltyPoints(ctx context.Context, userID string, points int) error {
	return m.Called(ctx, userID, points).Error(0)
}

func (m *Repository) ListAddresses(ctx context.Context, userID string) ([]model.UserAddress, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).([]model.UserAddress)
	return a, args.Error(1)
}

func (m *Repository) FindAddress(ctx context.Context, userID, id string) (*model.UserAddress, error) {
	args := m.Called(ctx, userID, id)
	a, _ := args.Get(0).(*model.UserAddress)
	return a, args.Error(1)
}

func (m *Repository) CreateAddress(ctx context.Context, a *model.UserAddress) error {
	return m.Called(ctx, a).Error(0)
}

func (m *Repository) UpdateAddress(ctx context.Context, a *model.UserAddress) (bool, error) {
	args := m.Called(ctx, a)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) DeleteAddress(ctx context.Context, userID, id string) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) FindCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]dto.Customer, int, error) {
	args := m.Called(ctx, filters)
	c, _ := args.Get(0).([]dto.Customer)
	return c, args.Int(1), args.Error(2)
}

type UseCase struct {
	mock.Mock
}

func (m *UseCase) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*model.UserProfile)
	return p, args.Error(1)
}

func (m *UseCase) UpdateProfile(ctx context.Context, userID string, input *dto.UpdateProfileInput) (*model.UserProfile, error) {
	args := m.Called(ctx, userID, input)
	p, _ := args.Get(0).(*model.UserProfile)
	return p, args.Error(1)
}

func (m *UseCase) GetRole(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *UseCase) CreditLoyalty(ctx context.Context, userID string, points int) error {
	return m.Called(ctx, userID, points).Error(0)
}

func (m *UseCase) ListAddresses(ctx context.Context, userID string) ([]model.UserAddress, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).([]model.UserAddress)
	return a, args.Error(1)
}

func (m *UseCase) CreateAddress(ctx context.Context, input *dto.AddressInput) (*model.UserAddress, error) {
	args := m.Called(ctx, input)
	a, _ := args.Get(0).(*model.UserAddress)
	return a, args.Error(1)
}

func (m *UseCase) UpdateAddress(ctx context.Context, input *dto.AddressInput) (*model.UserAddress, error) {
	args := m.Called(ctx, input)
	a, _ := args.Get(0).(*model.UserAddress)
	return a, args.Error(1)
}

func (m *UseCase) DeleteAddress(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *UseCase) ListCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]dto.Customer, int, error) {
	args := m.Called(ctx, filters)
	c, _ := args.Get(0).([]dto.Customer)
	return c, args.Int(1), args.Error(2)
}

func (m *UseCase) UpdateCustomer(ctx context.Context, input *dto.UpdateCustomerInput) (*model.UserProfile, error) {
	args := m.Called(ctx, input)
	p, _ := args.Get(0).(*model.UserProfile)
	return p, args.Error(1)
}
