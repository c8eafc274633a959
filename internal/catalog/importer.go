// Package catalog loads a YAML catalog document (categories, products with
// their weight variations, and promo codes) into the store.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/coupon"
	couponusecase "github.com/fekuna/omnipos-storefront-service/internal/coupon/usecase"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/slug"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var ErrInvalidDocument = errors.New("invalid catalog document")

type Document struct {
	Categories []CategorySeed `yaml:"categories"`
	Products   []ProductSeed  `yaml:"products"`
	Coupons    []CouponSeed   `yaml:"coupons"`
}

type CategorySeed struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	SortOrder   int    `yaml:"sort_order"`
	Active      *bool  `yaml:"active"`
}

type ProductSeed struct {
	ID                 string          `yaml:"id"`
	Name               string          `yaml:"name"`
	Description        string          `yaml:"description"`
	Category           string          `yaml:"category"`
	PricePence         int64           `yaml:"price_pence"`
	OriginalPricePence *int64          `yaml:"original_price_pence"`
	SKU                string          `yaml:"sku"`
	Stock              int             `yaml:"stock"`
	ImageURL           string          `yaml:"image_url"`
	Active             *bool           `yaml:"active"`
	Variations         []VariationSeed `yaml:"variations"`
}

type VariationSeed struct {
	ID         string `yaml:"id"`
	Weight     string `yaml:"weight"`
	PricePence int64  `yaml:"price_pence"`
	SKU        string `yaml:"sku"`
	Stock      int    `yaml:"stock"`
}

type CouponSeed struct {
	Code               string `yaml:"code"`
	DiscountPercentage int    `yaml:"discount_percentage"`
}

type Result struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Variations int `json:"variations"`
	Coupons    int `json:"coupons"`
}

// Refresher re-indexes imported products; optional.
type Refresher interface {
	RefreshProducts(ctx context.Context, ids []string) error
}

func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

type Importer struct {
	categories category.Repository
	products   product.Repository
	coupons    coupon.Repository
	refresher  Refresher
	logger     logger.ZapLogger
}

func NewImporter(categories category.Repository, products product.Repository, coupons coupon.Repository, refresher Refresher, log logger.ZapLogger) *Importer {
	return &Importer{
		categories: categories,
		products:   products,
		coupons:    coupons,
		refresher:  refresher,
		logger:     log,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func active(b *bool) bool {
	return b == nil || *b
}

// variationID keeps re-imports of the same product weight on the same row.
func variationID(productID, weight string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("storefront:"+productID+"/"+weight)).String()
}

// Validate checks the document before anything is written.
func (d *Document) Validate() error {
	for i, c := range d.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: categories[%d] has no name", ErrInvalidDocument, i)
		}
	}
	for i, p := range d.Products {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: products[%d] has no name", ErrInvalidDocument, i)
		}
		if p.PricePence < 0 || p.Stock < 0 {
			return fmt.Errorf("%w: products[%d] has a negative price or stock", ErrInvalidDocument, i)
		}
		for j, v := range p.Variations {
			if strings.TrimSpace(v.Weight) == "" || v.PricePence < 0 || v.Stock < 0 {
				return fmt.Errorf("%w: products[%d].variations[%d] is invalid", ErrInvalidDocument, i, j)
			}
		}
	}
	for i, c := range d.Coupons {
		if couponusecase.Normalize(c.Code) == "" || c.DiscountPercentage < 1 || c.DiscountPercentage > 100 {
			return fmt.Errorf("%w: coupons[%d] needs a code and a discount between 1 and 100", ErrInvalidDocument, i)
		}
	}
	return nil
}

// Import upserts the document. Stock of existing products and the used flag
// of existing promo codes are left alone so re-running a seed is safe.
func (im *Importer) Import(ctx context.Context, doc *Document) (*Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	res := &Result{}

	for _, c := range doc.Categories {
		cat := &model.Category{
			Slug:        c.Slug,
			Name:        strings.TrimSpace(c.Name),
			Description: optional(c.Description),
			SortOrder:   c.SortOrder,
			IsActive:    active(c.Active),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if cat.Slug == "" {
			cat.Slug = slug.Make(cat.Name)
		}
		if err := im.categories.Upsert(ctx, cat); err != nil {
			return res, fmt.Errorf("category %s: %w", cat.Slug, err)
		}
		res.Categories++
	}

	ids := make([]string, 0, len(doc.Products))
	for _, p := range doc.Products {
		prod := &model.Product{
			BaseModel:          model.BaseModel{ID: p.ID, CreatedAt: now, UpdatedAt: now},
			Name:               strings.TrimSpace(p.Name),
			Description:        optional(p.Description),
			PricePence:         p.PricePence,
			OriginalPricePence: p.OriginalPricePence,
			SKU:                optional(p.SKU),
			StockQuantity:      p.Stock,
			ImageURL:           optional(p.ImageURL),
			IsActive:           active(p.Active),
		}
		if prod.ID == "" {
			prod.ID = slug.Make(prod.Name)
		}
		if p.Category != "" {
			cat := slug.Make(p.Category)
			prod.Category = &cat
		}
		if err := im.products.Upsert(ctx, prod); err != nil {
			return res, fmt.Errorf("product %s: %w", prod.ID, err)
		}
		res.Products++
		ids = append(ids, prod.ID)

		for _, v := range p.Variations {
			variation := &model.ProductVariation{
				ID:            v.ID,
				ProductID:     prod.ID,
				Weight:        strings.TrimSpace(v.Weight),
				PricePence:    v.PricePence,
				SKU:           optional(v.SKU),
				StockQuantity: v.Stock,
				CreatedAt:     now,
			}
			if variation.ID == "" {
				variation.ID = variationID(prod.ID, variation.Weight)
			}
			if err := im.products.UpsertVariation(ctx, variation); err != nil {
				return res, fmt.Errorf("variation %s/%s: %w", prod.ID, variation.Weight, err)
			}
			res.Variations++
		}
	}

	for _, c := range doc.Coupons {
		cp := &model.Coupon{
			ID:                 uuid.New().String(),
			Code:               couponusecase.Normalize(c.Code),
			DiscountPercentage: c.DiscountPercentage,
			CreatedAt:          now,
		}
		if err := im.coupons.Upsert(ctx, cp); err != nil {
			return res, fmt.Errorf("coupon %s: %w", cp.Code, err)
		}
		res.Coupons++
	}

	if im.refresher != nil && len(ids) > 0 {
		if err := im.refresher.RefreshProducts(ctx, ids); err != nil {
			im.logger.Warn("failed to refresh imported products", zap.Error(err))
		}
	}

	im.logger.Info("catalog imported",
		zap.Int("categories", res.Categories),
		zap.Int("products", res.Products),
		zap.Int("variations", res.Variations),
		zap.Int("coupons", res.Coupons))
	return res, nil
}
