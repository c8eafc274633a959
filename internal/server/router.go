package server

import (
	"net/http"
	"time"

	accountH "github.com/fekuna/omnipos-storefront-service/internal/account/handler"
	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	cartH "github.com/fekuna/omnipos-storefront-service/internal/cart/handler"
	catalogH "github.com/fekuna/omnipos-storefront-service/internal/catalog/handler"
	catH "github.com/fekuna/omnipos-storefront-service/internal/category/handler"
	checkoutH "github.com/fekuna/omnipos-storefront-service/internal/checkout/handler"
	couponH "github.com/fekuna/omnipos-storefront-service/internal/coupon/handler"
	invH "github.com/fekuna/omnipos-storefront-service/internal/inventory/handler"
	orderH "github.com/fekuna/omnipos-storefront-service/internal/order/handler"
	prodH "github.com/fekuna/omnipos-storefront-service/internal/product/handler"
	"github.com/fekuna/omnipos-storefront-service/pkg/httpx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/metrics"
	"github.com/fekuna/omnipos-storefront-service/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Category  *catH.CategoryHandler
	Product   *prodH.ProductHandler
	Inventory *invH.InventoryHandler
	Coupon    *couponH.CouponHandler
	Cart      *cartH.CartHandler
	Checkout  *checkoutH.CheckoutHandler
	Order     *orderH.OrderHandler
	Account   *accountH.AccountHandler
	Catalog   *catalogH.CatalogHandler
}

type RouterConfig struct {
	Handlers       Handlers
	Auth           *auth.Middleware
	Metrics        *metrics.Recorder
	Health         *HealthWatcher
	RequestTimeout time.Duration
	Logger         logger.ZapLogger
}

func NewRouter(cfg RouterConfig) http.Handler {
	h := cfg.Handlers
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)
	r.Use(middleware.SecurityHeaders)
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}

	r.Get("/healthz", healthz(cfg.Health))

	r.Route("/v1", func(r chi.Router) {
		// Stripe signs the raw body; no bearer token is involved.
		r.Post("/webhooks/stripe", h.Checkout.StripeWebhook)

		r.Group(func(r chi.Router) {
			r.Use(cfg.Auth.Authenticate)

			r.Get("/categories", h.Category.ListCategories)
			r.Get("/categories/{slug}", h.Category.GetCategory)
			r.Get("/categories/{slug}/products", h.Product.ListProducts)
			r.Get("/products", h.Product.ListProducts)
			r.Get("/products/{id}", h.Product.GetProduct)
			r.Get("/products/{id}/variations", h.Product.ListVariations)

			r.Post("/coupons/validate", h.Coupon.ValidateCode)

			r.Route("/cart", func(r chi.Router) {
				r.Post("/quote", h.Cart.Quote)
				r.Get("/", h.Cart.GetCart)
				r.Delete("/", h.Cart.ClearCart)
				r.Put("/items", h.Cart.SetItem)
				r.Delete("/items/{product_id}", h.Cart.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/stripe/sessions", h.Checkout.CreateStripeSession)
				r.Post("/stripe/sessions/{id}/confirm", h.Checkout.ConfirmStripeSession)
				r.Post("/square/payments", h.Checkout.ChargeSquare)
			})

			r.Route("/account", func(r chi.Router) {
				r.Use(cfg.Auth.RequireUser)
				r.Get("/profile", h.Account.GetProfile)
				r.Patch("/profile", h.Account.UpdateProfile)
				r.Get("/addresses", h.Account.ListAddresses)
				r.Post("/addresses", h.Account.CreateAddress)
				r.Put("/addresses/{id}", h.Account.UpdateAddress)
				r.Delete("/addresses/{id}", h.Account.DeleteAddress)
				r.Get("/orders", h.Order.ListMyOrders)
				r.Get("/orders/{id}", h.Order.GetMyOrder)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(cfg.Auth.RequireAdmin)

				r.Get("/dashboard", h.Order.DashboardStats)
				r.Get("/metrics", metricsSnapshot(cfg.Metrics))
				r.Post("/catalog/import", h.Catalog.ImportCatalog)

				r.Get("/categories", h.Category.AdminListCategories)
				r.Post("/categories", h.Category.CreateCategory)
				r.Put("/categories/{slug}", h.Category.UpdateCategory)
				r.Delete("/categories/{slug}", h.Category.DeleteCategory)

				r.Get("/products", h.Product.AdminListProducts)
				r.Post("/products", h.Product.CreateProduct)
				r.Get("/products/{id}", h.Product.AdminGetProduct)
				r.Put("/products/{id}", h.Product.UpdateProduct)
				r.Delete("/products/{id}", h.Product.DeleteProduct)
				r.Get("/products/{id}/variations", h.Product.ListVariations)
				r.Post("/products/{id}/variations", h.Product.AddVariation)
				r.Put("/products/{id}/variations/{variationID}", h.Product.UpdateVariation)
				r.Delete("/products/{id}/variations/{variationID}", h.Product.DeleteVariation)

				r.Post("/inventory/adjustments", h.Inventory.AdjustStock)
				r.Get("/inventory/low-stock", h.Inventory.ListLowStock)
				r.Get("/inventory/movements", h.Inventory.ListMovements)

				r.Get("/coupons", h.Coupon.ListCoupons)
				r.Post("/coupons", h.Coupon.CreateCoupon)
				r.Delete("/coupons/{id}", h.Coupon.DeleteCoupon)

				r.Get("/orders", h.Order.ListOrders)
				r.Get("/orders/{id}", h.Order.GetOrder)
				r.Patch("/orders/{id}/status", h.Order.UpdateStatus)

				r.Get("/customers", h.Account.ListCustomers)
				r.Patch("/customers/{id}", h.Account.UpdateCustomer)
			})
		})
	})

	return r
}

func healthz(watcher *HealthWatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if watcher != nil && !watcher.Serving() {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func metricsSnapshot(rec *metrics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.OK(w, rec.Snapshot())
	}
}
