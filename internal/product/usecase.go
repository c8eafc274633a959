package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	GetProducts(ctx context.Context, ids []string) (map[string]*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// Variation ops
	AddVariation(ctx context.Context, input *dto.CreateVariationInput) (*model.ProductVariation, error)
	UpdateVariation(ctx context.Context, input *dto.UpdateVariationInput) (*model.ProductVariation, error)
	DeleteVariation(ctx context.Context, productID, variationID string) error
	ListVariations(ctx context.Context, productID string) ([]model.ProductVariation, error)

	// RefreshProducts re-indexes the given products and drops cached listings,
	// used after stock changes made outside this module.
	RefreshProducts(ctx context.Context, ids []string) error

	// Wait blocks until background index and cache writes finish or ctx ends.
	Wait(ctx context.Context) error
}
