// Package mocks holds testify mocks of the category interfaces.
package mocks

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, c *model.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *Repository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(*model.Category)
	return c, args.Error(1)
}

func (m *Repository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	args := m.Called(ctx, f)
	c, _ := args.Get(0).([]model.Category)
	return c, args.Int(1), args.Error(2)
}

func (m *Repository) Update(ctx context.Context, c *model.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *Repository) Delete(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

func (m *Repository) Upsert(ctx context.Context, c *model.Category) error {
	return m.Called(ctx, c).Error(0)
}
