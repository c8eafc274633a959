package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/coupon"
	"github.com/fekuna/omnipos-storefront-service/internal/coupon/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/httpx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CouponHandler struct {
	uc     coupon.UseCase
	logger logger.ZapLogger
}

func NewCouponHandler(uc coupon.UseCase, log logger.ZapLogger) *CouponHandler {
	return &CouponHandler{
		uc:     uc,
		logger: log,
	}
}

type validateRequest struct {
	Code string `json:"code"`
}

type validateResponse struct {
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discount_percentage"`
}

type createRequest struct {
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discount_percentage"`
}

func (h *CouponHandler) ValidateCode(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	c, err := h.uc.ValidateCode(r.Context(), req.Code, auth.GetUserID(r.Context()))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, validateResponse{Code: c.Code, DiscountPercentage: c.DiscountPercentage})
}

func (h *CouponHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	page, pageSize := httpx.Page(r)
	filters := &dto.CouponFilters{Page: page, PageSize: pageSize}
	if raw := r.URL.Query().Get("used"); raw != "" {
		if used, err := strconv.ParseBool(raw); err == nil {
			filters.Used = &used
		}
	}

	coupons, total, err := h.uc.ListCoupons(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list coupons", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.List(w, coupons, total, page, pageSize)
}

func (h *CouponHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	c, err := h.uc.CreateCoupon(r.Context(), &dto.CreateCouponInput{
		Code:               req.Code,
		DiscountPercentage: req.DiscountPercentage,
	})
	if err != nil {
		h.logger.Error("failed to create coupon", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.Created(w, c)
}

func (h *CouponHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteCoupon(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("failed to delete coupon", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
