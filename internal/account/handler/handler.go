package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/account"
	"github.com/fekuna/omnipos-storefront-service/internal/account/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/httpx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AccountHandler struct {
	uc     account.UseCase
	logger logger.ZapLogger
}

func NewAccountHandler(uc account.UseCase, log logger.ZapLogger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: log,
	}
}

type profileResponse struct {
	*model.UserProfile
	Email string `json:"email"`
}

func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	p, err := h.uc.GetProfile(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("failed to load profile", zap.String("user_id", user.UserID), zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, profileResponse{UserProfile: p, Email: user.Email})
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateProfileInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	user := auth.GetUser(r.Context())
	p, err := h.uc.UpdateProfile(r.Context(), user.UserID, &input)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, profileResponse{UserProfile: p, Email: user.Email})
}

func (h *AccountHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.uc.ListAddresses(r.Context(), auth.GetUserID(r.Context()))
	if err != nil {
		h.logger.Error("failed to list addresses", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, addresses)
}

func (h *AccountHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var input dto.AddressInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	input.UserID = auth.GetUserID(r.Context())

	a, err := h.uc.CreateAddress(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.Created(w, a)
}

func (h *AccountHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var input dto.AddressInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	input.ID = chi.URLParam(r, "id")
	input.UserID = auth.GetUserID(r.Context())

	a, err := h.uc.UpdateAddress(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, a)
}

func (h *AccountHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteAddress(r.Context(), auth.GetUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := httpx.Page(r)
	filters := &dto.CustomerFilters{
		Search:   r.URL.Query().Get("search"),
		Page:     page,
		PageSize: pageSize,
	}

	customers, total, err := h.uc.ListCustomers(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.List(w, customers, total, page, pageSize)
}

func (h *AccountHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateCustomerInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	input.ID = chi.URLParam(r, "id")

	p, err := h.uc.UpdateCustomer(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, p)
}
