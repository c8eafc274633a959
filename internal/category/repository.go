package category

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, slug string) error
	Upsert(ctx context.Context, category *model.Category) error
}
