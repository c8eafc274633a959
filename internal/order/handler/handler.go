package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/httpx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	page, pageSize := httpx.Page(r)
	orders, total, err := h.uc.ListMyOrders(r.Context(), auth.GetUserID(r.Context()), page, pageSize)
	if err != nil {
		h.logger.Error("failed to list customer orders", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.List(w, orders, total, page, pageSize)
}

func (h *OrderHandler) GetMyOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.uc.GetMyOrder(r.Context(), auth.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, o)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, pageSize := httpx.Page(r)
	filters := &dto.OrderFilters{
		Status:   r.URL.Query().Get("status"),
		Page:     page,
		PageSize: pageSize,
	}

	orders, total, err := h.uc.ListOrders(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.List(w, orders, total, page, pageSize)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.uc.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, o)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	o, err := h.uc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.logger.Error("failed to update order status", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, o)
}

func (h *OrderHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.uc.DashboardStats(r.Context())
	if err != nil {
		h.logger.Error("failed to load dashboard stats", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, stats)
}
