package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/account/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/account/mocks"
	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRouter(uc *mocks.UseCase) http.Handler {
	h := NewAccountHandler(uc, logger.NewNop())
	r := chi.NewRouter()
	r.Get("/account", h.GetProfile)
	r.Post("/account/addresses", h.CreateAddress)
	r.Patch("/admin/customers/{id}", h.UpdateCustomer)
	return r
}

func withUser(req *http.Request) *http.Request {
	return req.WithContext(auth.WithUser(req.Context(), &auth.UserContext{UserID: "u1", Email: "ada@example.com"}))
}

func TestGetProfile_IncludesEmail(t *testing.T) {
	uc := new(mocks.UseCase)
	uc.On("GetProfile", mock.Anything, "u1").Return(&model.UserProfile{ID: "u1", LoyaltyPoints: 42, Role: model.RoleCustomer}, nil)

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodGet, "/account", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ada@example.com"`)
	assert.Contains(t, rec.Body.String(), `"loyalty_points":42`)
}

func TestCreateAddress_ScopesToUser(t *testing.T) {
	uc := new(mocks.UseCase)
	uc.On("CreateAddress", mock.Anything, mock.MatchedBy(func(in *dto.AddressInput) bool {
		return in.UserID == "u1" && in.City == "York"
	})).Return(&model.UserAddress{ID: "a1", UserID: "u1", City: "York"}, nil)

	body := `{"address_line1":"1 Tea Lane","city":"York","postcode":"YO1","user_id":"attacker"}`
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/account/addresses", strings.NewReader(body))))

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestUpdateCustomer_UsesPathID(t *testing.T) {
	uc := new(mocks.UseCase)
	uc.On("UpdateCustomer", mock.Anything, mock.MatchedBy(func(in *dto.UpdateCustomerInput) bool {
		return in.ID == "u7" && in.Role != nil && *in.Role == model.RoleAdmin
	})).Return(&model.UserProfile{ID: "u7", Role: model.RoleAdmin}, nil)

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/customers/u7", strings.NewReader(`{"role":"admin"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}
