// Package mocks holds testify mocks of the product interfaces.
package mocks

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, p *model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *Repository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *Repository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	p, _ := args.Get(0).([]model.Product)
	return p, args.Error(1)
}

func (m *Repository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	args := m.Called(ctx, f)
	p, _ := args.Get(0).([]model.Product)
	return p, args.Int(1), args.Error(2)
}

func (m *Repository) Update(ctx context.Context, p *model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *Repository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Repository) Upsert(ctx context.Context, p *model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *Repository) IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error) {
	args := m.Called(ctx, sku, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) CategoryExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) CreateVariation(ctx context.Context, v *model.ProductVariation) error {
	return m.Called(ctx, v).Error(0)
}

func (m *Repository) FindVariationByID(ctx context.Context, id string) (*model.ProductVariation, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.ProductVariation)
	return v, args.Error(1)
}

func (m *Repository) FindVariations(ctx context.Context, productIDs []string) ([]model.ProductVariation, error) {
	args := m.Called(ctx, productIDs)
	v, _ := args.Get(0).([]model.ProductVariation)
	return v, args.Error(1)
}

func (m *Repository) UpdateVariation(ctx context.Context, v *model.ProductVariation) error {
	return m.Called(ctx, v).Error(0)
}

func (m *Repository) DeleteVariation(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Repository) UpsertVariation(ctx context.Context, v *model.ProductVariation) error {
	return m.Called(ctx, v).Error(0)
}

type UseCase struct {
	mock.Mock
}

func (m *UseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	args := m.Called(ctx, input)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *UseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *UseCase) GetProducts(ctx context.Context, ids []string) (map[string]*model.Product, error) {
	args := m.Called(ctx, ids)
	p, _ := args.Get(0).(map[string]*model.Product)
	return p, args.Error(1)
}

func (m *UseCase) ListProducts(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	args := m.Called(ctx, f)
	p, _ := args.Get(0).([]model.Product)
	return p, args.Int(1), args.Error(2)
}

func (m *UseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	args := m.Called(ctx, input)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *UseCase) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UseCase) AddVariation(ctx context.Context, input *dto.CreateVariationInput) (*model.ProductVariation, error) {
	args := m.Called(ctx, input)
	v, _ := args.Get(0).(*model.ProductVariation)
	return v, args.Error(1)
}

func (m *UseCase) UpdateVariation(ctx context.Context, input *dto.UpdateVariationInput) (*model.ProductVariation, error) {
	args := m.Called(ctx, input)
	v, _ := args.Get(0).(*model.ProductVariation)
	return v, args.Error(1)
}

func (m *UseCase) DeleteVariation(ctx context.Context, productID, variationID string) error {
	return m.Called(ctx, productID, variationID).Error(0)
}

func (m *UseCase) ListVariations(ctx context.Context, productID string) ([]model.ProductVariation, error) {
	args := m.Called(ctx, productID)
	v, _ := args.Get(0).([]model.ProductVariation)
	return v, args.Error(1)
}

func (m *UseCase) RefreshProducts(ctx context.Context, ids []string) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *UseCase) Wait(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
