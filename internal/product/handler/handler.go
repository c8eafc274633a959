package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/httpx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

type productRequest struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Category           string `json:"category"`
	PricePence         int64  `json:"price_pence"`
	OriginalPricePence *int64 `json:"original_price_pence"`
	SKU                string `json:"sku"`
	StockQuantity      int    `json:"stock_quantity"`
	ImageURL           string `json:"image_url"`
	IsActive           *bool  `json:"is_active"`
}

type variationRequest struct {
	Weight        string `json:"weight"`
	PricePence    int64  `json:"price_pence"`
	SKU           string `json:"sku"`
	StockQuantity int    `json:"stock_quantity"`
}

func filtersFromQuery(r *http.Request) *dto.ProductFilters {
	q := r.URL.Query()
	page, pageSize := httpx.Page(r)
	return &dto.ProductFilters{
		Category:    strings.TrimSpace(q.Get("category")),
		SearchQuery: strings.TrimSpace(q.Get("search")),
		SortBy:      q.Get("sort_by"),
		SortOrder:   q.Get("sort_order"),
		Page:        page,
		PageSize:    pageSize,
	}
}

// ListProducts is the public catalog: inactive products are never shown.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filters := filtersFromQuery(r)
	if slug := chi.URLParam(r, "slug"); slug != "" {
		filters.Category = slug
	}
	active := true
	filters.IsActive = &active

	h.list(w, r, filters)
}

func (h *ProductHandler) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	filters := filtersFromQuery(r)
	if raw := r.URL.Query().Get("is_active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			filters.IsActive = &active
		}
	}
	h.list(w, r, filters)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request, filters *dto.ProductFilters) {
	products, total, err := h.uc.ListProducts(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.List(w, products, total, filters.Page, filters.PageSize)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if !p.IsActive {
		httpx.WriteError(w, r, errx.NotFound(product.ErrProductNotFound, "product not found"))
		return
	}
	httpx.OK(w, p)
}

func (h *ProductHandler) AdminGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, p)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	p, err := h.uc.CreateProduct(r.Context(), &dto.CreateProductInput{
		ID:                 req.ID,
		Name:               req.Name,
		Description:        req.Description,
		Category:           req.Category,
		PricePence:         req.PricePence,
		OriginalPricePence: req.OriginalPricePence,
		SKU:                req.SKU,
		StockQuantity:      req.StockQuantity,
		ImageURL:           req.ImageURL,
		IsActive:           req.IsActive,
	})
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.Created(w, p)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	input := &dto.UpdateProductInput{
		ID:                 chi.URLParam(r, "id"),
		Name:               req.Name,
		Description:        req.Description,
		Category:           req.Category,
		PricePence:         req.PricePence,
		OriginalPricePence: req.OriginalPricePence,
		SKU:                req.SKU,
		ImageURL:           req.ImageURL,
		IsActive:           true,
	}
	if req.IsActive != nil {
		input.IsActive = *req.IsActive
	}

	p, err := h.uc.UpdateProduct(r.Context(), input)
	if err != nil {
		h.logger.Error("failed to update product", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, p)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("failed to delete product", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) ListVariations(w http.ResponseWriter, r *http.Request) {
	variations, err := h.uc.ListVariations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, variations)
}

func (h *ProductHandler) AddVariation(w http.ResponseWriter, r *http.Request) {
	var req variationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	v, err := h.uc.AddVariation(r.Context(), &dto.CreateVariationInput{
		ProductID:     chi.URLParam(r, "id"),
		Weight:        req.Weight,
		PricePence:    req.PricePence,
		SKU:           req.SKU,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		h.logger.Error("failed to add variation", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.Created(w, v)
}

func (h *ProductHandler) UpdateVariation(w http.ResponseWriter, r *http.Request) {
	var req variationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	v, err := h.uc.UpdateVariation(r.Context(), &dto.UpdateVariationInput{
		ID:         chi.URLParam(r, "variationID"),
		ProductID:  chi.URLParam(r, "id"),
		Weight:     req.Weight,
		PricePence: req.PricePence,
		SKU:        req.SKU,
	})
	if err != nil {
		h.logger.Error("failed to update variation", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, v)
}

func (h *ProductHandler) DeleteVariation(w http.ResponseWriter, r *http.Request) {
	err := h.uc.DeleteVariation(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "variationID"))
	if err != nil {
		h.logger.Error("failed to delete variation", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
