package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/httpx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

type categoryRequest struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

// ListCategories serves the storefront menu: active categories only.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	active := true
	categories, total, err := h.uc.ListCategories(r.Context(), &dto.CategoryFilters{IsActive: &active})
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.List(w, categories, total, 1, total)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := h.uc.GetCategory(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, cat)
}

func (h *CategoryHandler) AdminListCategories(w http.ResponseWriter, r *http.Request) {
	page, pageSize := httpx.Page(r)
	categories, total, err := h.uc.ListCategories(r.Context(), &dto.CategoryFilters{Page: page, PageSize: pageSize})
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.List(w, categories, total, page, pageSize)
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	cat, err := h.uc.CreateCategory(r.Context(), &dto.CreateCategoryInput{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.Created(w, cat)
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	input := &dto.UpdateCategoryInput{
		Slug:        chi.URLParam(r, "slug"),
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if req.IsActive != nil {
		input.IsActive = *req.IsActive
	}

	cat, err := h.uc.UpdateCategory(r.Context(), input)
	if err != nil {
		h.logger.Error("failed to update category", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, cat)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteCategory(r.Context(), chi.URLParam(r, "slug")); err != nil {
		h.logger.Error("failed to delete category", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
