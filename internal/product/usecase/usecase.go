package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/search"
	"github.com/fekuna/omnipos-storefront-service/pkg/slug"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	indexName       = "products"
	listCachePrefix = "products:list:"
	listCacheTTL    = 5 * time.Minute
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
			"description": { "type": "text" },
			"category": { "type": "keyword" },
			"sku": { "type": "keyword" },
			"price_pence": { "type": "long" },
			"stock_quantity": { "type": "integer" },
			"is_active": { "type": "boolean" },
			"created_at": { "type": "date" }
		}
	}
}`

// SearchIndex is the part of the Elasticsearch client the catalog uses.
type SearchIndex interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc any) error
	Delete(ctx context.Context, index, id string) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResponse, error)
}

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     SearchIndex
	logger logger.ZapLogger

	indexOnce sync.Once
	wg        sync.WaitGroup
}

// NewProductUseCase accepts a nil cache or search index; the matching
// feature is then skipped.
func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es SearchIndex, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

type listResult struct {
	Products []model.Product `json:"products"`
	Count    int             `json:"count"`
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validateProduct(input.Name, input.PricePence); err != nil {
		return nil, err
	}
	if input.StockQuantity < 0 {
		return nil, errx.BadRequest(errors.New("negative stock"), "stock quantity cannot be negative")
	}
	if err := uc.checkCategory(ctx, input.Category); err != nil {
		return nil, err
	}
	if err := uc.checkSKU(ctx, input.SKU, ""); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	if input.ID != "" {
		id = slug.Make(input.ID)
		existing, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, errx.Conflict(fmt.Errorf("product %s exists", id), "a product with this id already exists")
		}
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:          model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		Name:               strings.TrimSpace(input.Name),
		Description:        optional(input.Description),
		Category:           optional(input.Category),
		PricePence:         input.PricePence,
		OriginalPricePence: input.OriginalPricePence,
		SKU:                optional(input.SKU),
		StockQuantity:      input.StockQuantity,
		ImageURL:           optional(input.ImageURL),
		IsActive:           isActive,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.afterWrite(p.ID)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errx.NotFound(product.ErrProductNotFound, "product not found")
	}

	variations, err := uc.repo.FindVariations(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Variations = variations
	return p, nil
}

// GetProducts loads products with their variations keyed by id. Unknown ids
// are simply absent from the map.
func (uc *productUseCase) GetProducts(ctx context.Context, ids []string) (map[string]*model.Product, error) {
	products, err := uc.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := uc.attachVariations(ctx, products); err != nil {
		return nil, err
	}

	out := make(map[string]*model.Product, len(products))
	for i := range products {
		out[products[i].ID] = &products[i]
	}
	return out, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil && uc.cache != nil {
		var cached listResult
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("product list cache read failed", zap.Error(err))
		}
		if hit {
			return cached.Products, cached.Count, nil
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, total, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, total, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.attachVariations(ctx, products); err != nil {
		return nil, 0, err
	}

	if cacheKey != "" && uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, cacheKey, listResult{Products: products, Count: count}, listCacheTTL); err != nil {
			uc.logger.Warn("product list cache write failed", zap.Error(err))
		}
	}

	return products, count, nil
}

func (uc *productUseCase) searchElastic(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	filter := []map[string]interface{}{}
	if f.IsActive != nil {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"is_active": *f.IsActive}})
	}
	if f.Category != "" {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"category": f.Category}})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query":     f.SearchQuery,
							"fields":    []string{"name^3", "description", "sku"},
							"fuzziness": "AUTO",
						},
					},
				},
				"filter": filter,
			},
		},
	}
	if f.PageSize > 0 {
		q["from"] = (f.Page - 1) * f.PageSize
		q["size"] = f.PageSize
	}
	if sortField := esSortField(f.SortBy); sortField != "" {
		order := "desc"
		if strings.ToLower(f.SortOrder) == "asc" {
			order = "asc"
		}
		q["sort"] = []map[string]interface{}{{sortField: map[string]interface{}{"order": order}}}
	}

	res, err := uc.es.Search(ctx, indexName, q)
	if err != nil {
		return nil, 0, err
	}

	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			uc.logger.Warn("skipping undecodable search hit", zap.String("id", hit.ID), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products, res.Hits.Total.Value, nil
}

func esSortField(sortBy string) string {
	switch sortBy {
	case "name":
		return "name.keyword"
	case "price":
		return "price_pence"
	case "created_at":
		return "created_at"
	}
	return ""
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errx.NotFound(product.ErrProductNotFound, "product not found")
	}
	if err := validateProduct(input.Name, input.PricePence); err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, input.Category); err != nil {
		return nil, err
	}
	if input.SKU != "" && (p.SKU == nil || *p.SKU != input.SKU) {
		if err := uc.checkSKU(ctx, input.SKU, p.ID); err != nil {
			return nil, err
		}
	}

	p.Name = strings.TrimSpace(input.Name)
	p.Description = optional(input.Description)
	p.Category = optional(input.Category)
	p.PricePence = input.PricePence
	p.OriginalPricePence = input.OriginalPricePence
	p.SKU = optional(input.SKU)
	p.ImageURL = optional(input.ImageURL)
	p.IsActive = input.IsActive
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.afterWrite(p.ID)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return errx.NotFound(product.ErrProductNotFound, "product not found")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.background(func(ctx context.Context) {
		uc.invalidateProductCache(ctx)
		if uc.es == nil {
			return
		}
		if err := uc.es.Delete(ctx, indexName, id); err != nil {
			uc.logger.Error("failed to delete product from ES", zap.String("product_id", id), zap.Error(err))
		}
	})
	return nil
}

func (uc *productUseCase) AddVariation(ctx context.Context, input *dto.CreateVariationInput) (*model.ProductVariation, error) {
	if _, err := uc.mustFindProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}
	if err := validateVariation(input.Weight, input.PricePence); err != nil {
		return nil, err
	}
	if input.StockQuantity < 0 {
		return nil, errx.BadRequest(errors.New("negative stock"), "stock quantity cannot be negative")
	}

	v := &model.ProductVariation{
		ID:            uuid.New().String(),
		ProductID:     input.ProductID,
		Weight:        strings.TrimSpace(input.Weight),
		PricePence:    input.PricePence,
		SKU:           optional(input.SKU),
		StockQuantity: input.StockQuantity,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.CreateVariation(ctx, v); err != nil {
		return nil, err
	}

	uc.afterWrite(input.ProductID)
	return v, nil
}

func (uc *productUseCase) UpdateVariation(ctx context.Context, input *dto.UpdateVariationInput) (*model.ProductVariation, error) {
	v, err := uc.mustFindVariation(ctx, input.ProductID, input.ID)
	if err != nil {
		return nil, err
	}
	if err := validateVariation(input.Weight, input.PricePence); err != nil {
		return nil, err
	}

	v.Weight = strings.TrimSpace(input.Weight)
	v.PricePence = input.PricePence
	v.SKU = optional(input.SKU)
	if err := uc.repo.UpdateVariation(ctx, v); err != nil {
		return nil, err
	}

	uc.afterWrite(input.ProductID)
	return v, nil
}

func (uc *productUseCase) DeleteVariation(ctx context.Context, productID, variationID string) error {
	if _, err := uc.mustFindVariation(ctx, productID, variationID); err != nil {
		return err
	}
	if err := uc.repo.DeleteVariation(ctx, variationID); err != nil {
		return err
	}
	uc.afterWrite(productID)
	return nil
}

func (uc *productUseCase) ListVariations(ctx context.Context, productID string) ([]model.ProductVariation, error) {
	if _, err := uc.mustFindProduct(ctx, productID); err != nil {
		return nil, err
	}
	return uc.repo.FindVariations(ctx, []string{productID})
}

func (uc *productUseCase) RefreshProducts(ctx context.Context, ids []string) error {
	uc.invalidateProductCache(ctx)
	if uc.es == nil || len(ids) == 0 {
		return nil
	}

	products, err := uc.GetProducts(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		p, ok := products[id]
		if !ok {
			continue
		}
		uc.syncToElastic(ctx, p)
	}
	return nil
}

func (uc *productUseCase) afterWrite(productID string) {
	uc.background(func(ctx context.Context) {
		uc.invalidateProductCache(ctx)
		if uc.es == nil {
			return
		}
		p, err := uc.GetProduct(ctx, productID)
		if err != nil {
			uc.logger.Error("failed to load product for indexing", zap.String("product_id", productID), zap.Error(err))
			return
		}
		uc.syncToElastic(ctx, p)
	})
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	uc.indexOnce.Do(func() {
		if err := uc.es.CreateIndex(ctx, indexName, indexMapping); err != nil {
			uc.logger.Warn("failed to ensure products index", zap.Error(err))
		}
	})

	if err := uc.es.Index(ctx, indexName, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", listCachePrefix, md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeletePattern(ctx, listCachePrefix+"*"); err != nil {
		uc.logger.Warn("failed to invalidate product list cache", zap.Error(err))
	}
}

// background runs fn detached from the request with its own timeout.
func (uc *productUseCase) background(fn func(ctx context.Context)) {
	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		fn(ctx)
	}()
}

func (uc *productUseCase) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		uc.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (uc *productUseCase) attachVariations(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	variations, err := uc.repo.FindVariations(ctx, ids)
	if err != nil {
		return err
	}

	byProduct := map[string][]model.ProductVariation{}
	for _, v := range variations {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}
	for i := range products {
		products[i].Variations = byProduct[products[i].ID]
	}
	return nil
}

func (uc *productUseCase) mustFindProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errx.NotFound(product.ErrProductNotFound, "product not found")
	}
	return p, nil
}

func (uc *productUseCase) mustFindVariation(ctx context.Context, productID, variationID string) (*model.ProductVariation, error) {
	v, err := uc.repo.FindVariationByID(ctx, variationID)
	if err != nil {
		return nil, err
	}
	if v == nil || v.ProductID != productID {
		return nil, errx.NotFound(product.ErrVariationNotFound, "variation not found")
	}
	return v, nil
}

func (uc *productUseCase) checkCategory(ctx context.Context, category string) error {
	if category == "" {
		return nil
	}
	ok, err := uc.repo.CategoryExists(ctx, category)
	if err != nil {
		return err
	}
	if !ok {
		return errx.BadRequest(product.ErrUnknownCategory, "unknown category")
	}
	return nil
}

func (uc *productUseCase) checkSKU(ctx context.Context, sku, excludeID string) error {
	if sku == "" {
		return nil
	}
	unique, err := uc.repo.IsSKUUnique(ctx, sku, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return errx.Conflict(product.ErrSKUTaken, "SKU already exists")
	}
	return nil
}

func validateProduct(name string, price int64) error {
	if strings.TrimSpace(name) == "" {
		return errx.BadRequest(errors.New("empty name"), "product name is required")
	}
	if price < 0 {
		return errx.BadRequest(errors.New("negative price"), "price cannot be negative")
	}
	return nil
}

func validateVariation(weight string, price int64) error {
	if strings.TrimSpace(weight) == "" {
		return errx.BadRequest(errors.New("empty weight"), "variation weight is required")
	}
	if price < 0 {
		return errx.BadRequest(errors.New("negative price"), "price cannot be negative")
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
