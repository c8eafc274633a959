package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, product *model.Product) error

	// Check SKU uniqueness
	IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error)
	CategoryExists(ctx context.Context, slug string) (bool, error)

	CreateVariation(ctx context.Context, variation *model.ProductVariation) error
	FindVariationByID(ctx context.Context, id string) (*model.ProductVariation, error)
	FindVariations(ctx context.Context, productIDs []string) ([]model.ProductVariation, error)
	UpdateVariation(ctx context.Context, variation *model.ProductVariation) error
	DeleteVariation(ctx context.Context, id string) error
	UpsertVariation(ctx context.Context, variation *model.ProductVariation) error
}
