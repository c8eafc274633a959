package handler

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/httpx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

type adjustRequest struct {
	ProductID      string  `json:"product_id"`
	VariationID    *string `json:"variation_id"`
	QuantityChange int     `json:"quantity_change"`
	MovementType   string  `json:"movement_type"`
	Reason         string  `json:"reason"`
	ReferenceID    string  `json:"reference_id"`
}

func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if req.VariationID != nil && *req.VariationID == "" {
		req.VariationID = nil
	}

	movement, err := h.uc.AdjustStock(r.Context(), &dto.AdjustStockInput{
		ProductID:      req.ProductID,
		VariationID:    req.VariationID,
		QuantityChange: req.QuantityChange,
		MovementType:   req.MovementType,
		Reason:         req.Reason,
		ReferenceID:    req.ReferenceID,
		UserID:         auth.GetUserID(r.Context()),
	})
	if err != nil {
		h.logger.Error("failed to adjust stock", zap.String("product_id", req.ProductID), zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, movement)
}

func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	page, pageSize := httpx.Page(r)
	threshold := httpx.IntParam(r, "threshold", 5, 0, 100000)

	items, total, err := h.uc.ListLowStock(r.Context(), threshold, page, pageSize)
	if err != nil {
		h.logger.Error("failed to list low stock", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.List(w, items, total, page, pageSize)
}

func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := httpx.Page(r)
	filters := &dto.MovementFilters{
		ProductID:    q.Get("product_id"),
		MovementType: q.Get("movement_type"),
		Page:         page,
		PageSize:     pageSize,
	}
	if t, err := time.Parse(time.RFC3339, q.Get("start_date")); err == nil {
		filters.StartDate = &t
	}
	if t, err := time.Parse(time.RFC3339, q.Get("end_date")); err == nil {
		filters.EndDate = &t
	}

	items, total, err := h.uc.ListMovements(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list stock movements", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.List(w, items, total, page, pageSize)
}
