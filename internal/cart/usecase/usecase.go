package usecase

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"go.uber.org/zap"
)

// ProductSource is the slice of the product usecase the cart needs.
type ProductSource interface {
	GetProducts(ctx context.Context, ids []string) (map[string]*model.Product, error)
}

// CouponValidator is the slice of the coupon usecase the cart needs.
type CouponValidator interface {
	ValidateCode(ctx context.Context, code, userID string) (*model.Coupon, error)
}

type cartUseCase struct {
	store    cart.Store
	products ProductSource
	coupons  CouponValidator
	pricing  config.StoreConfig
	logger   logger.ZapLogger
}

func NewCartUseCase(store cart.Store, products ProductSource, coupons CouponValidator, pricing config.StoreConfig, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		store:    store,
		products: products,
		coupons:  coupons,
		pricing:  pricing,
		logger:   log,
	}
}

// pricedItem is a cart line resolved against the catalog.
type pricedItem struct {
	product   *model.Product
	variation *model.ProductVariation
}

func (p pricedItem) unitPrice() int64 {
	if p.variation != nil {
		return p.variation.PricePence
	}
	return p.product.PricePence
}

func (p pricedItem) stock() int {
	if p.variation != nil {
		return p.variation.StockQuantity
	}
	return p.product.StockQuantity
}

// merge folds repeated product/variation lines into one. Every raw line must
// carry a positive quantity on its own.
func merge(items []dto.CartItem) ([]dto.CartItem, error) {
	out := make([]dto.CartItem, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, errx.BadRequest(cart.ErrInvalidQuantity, "quantity must be at least 1")
		}
		found := false
		for i := range out {
			if out[i].SameLine(it.ProductID, it.VariationID) {
				out[i].Quantity += it.Quantity
				found = true
				break
			}
		}
		if !found {
			out = append(out, it)
		}
	}
	return out, nil
}

func (uc *cartUseCase) resolve(ctx context.Context, items []dto.CartItem) ([]pricedItem, error) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := uc.products.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	resolved := make([]pricedItem, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, errx.BadRequest(cart.ErrInvalidQuantity, "quantity must be at least 1")
		}
		p, ok := products[it.ProductID]
		if !ok || p == nil || !p.IsActive {
			return nil, errx.BadRequest(fmt.Errorf("%w: %s", cart.ErrProductUnavailable, it.ProductID),
				"a product in your cart is no longer available")
		}
		line := pricedItem{product: p}
		if it.VariationID != nil {
			line.variation = p.FindVariation(*it.VariationID)
			if line.variation == nil {
				return nil, errx.BadRequest(fmt.Errorf("%w: %s", cart.ErrUnknownVariation, *it.VariationID),
					"a product option in your cart is no longer available")
			}
		}
		if it.Quantity > line.stock() {
			return nil, errx.New(fmt.Errorf("%w: %s", cart.ErrInsufficientStock, it.ProductID), http.StatusConflict,
				errx.CodeOutOfStock, fmt.Sprintf("only %d of %s left in stock", line.stock(), p.Name))
		}
		resolved = append(resolved, line)
	}
	return resolved, nil
}

func (uc *cartUseCase) Quote(ctx context.Context, input *dto.QuoteInput) (*dto.Quote, error) {
	items, err := merge(input.Items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errx.BadRequest(cart.ErrEmptyCart, "your cart is empty")
	}
	resolved, err := uc.resolve(ctx, items)
	if err != nil {
		return nil, err
	}

	quote := &dto.Quote{
		Lines:    make([]dto.QuoteLine, 0, len(items)),
		Currency: uc.pricing.Currency,
	}
	if input.PromoCode != "" {
		c, err := uc.coupons.ValidateCode(ctx, input.PromoCode, input.UserID)
		if err != nil {
			return nil, err
		}
		quote.PromoCode = c.Code
		quote.DiscountPercentage = c.DiscountPercentage
	}

	for i, it := range items {
		r := resolved[i]
		unit := r.unitPrice()
		unitDiscount := unit * int64(quote.DiscountPercentage) / 100
		line := dto.QuoteLine{
			ProductID:           it.ProductID,
			VariationID:         it.VariationID,
			Name:                r.product.Name,
			ImageURL:            r.product.ImageURL,
			Quantity:            it.Quantity,
			UnitPricePence:      unit,
			DiscountedUnitPence: unit - unitDiscount,
			LineTotalPence:      (unit - unitDiscount) * int64(it.Quantity),
		}
		if r.variation != nil {
			line.Weight = r.variation.Weight
		}
		quote.Lines = append(quote.Lines, line)
		quote.SubtotalPence += unit * int64(it.Quantity)
		quote.DiscountPence += unitDiscount * int64(it.Quantity)
	}

	if quote.SubtotalPence < uc.pricing.FreeShippingThreshold {
		quote.ShippingPence = uc.pricing.ShippingFee
	}
	quote.TotalPence = quote.SubtotalPence - quote.DiscountPence + quote.ShippingPence
	if input.UserID != "" && uc.pricing.PencePerLoyaltyPoint > 0 {
		quote.PointsEarned = int(quote.TotalPence / uc.pricing.PencePerLoyaltyPoint)
	}
	return quote, nil
}

func (uc *cartUseCase) GetCart(ctx context.Context, key string) (*dto.Cart, error) {
	if key == "" {
		return nil, errx.BadRequest(cart.ErrCartKeyRequired, "cart id is required")
	}
	c, err := uc.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &dto.Cart{ID: key, Items: []dto.CartItem{}}
	}
	return c, nil
}

func (uc *cartUseCase) SetItem(ctx context.Context, key string, item dto.CartItem) (*dto.Cart, error) {
	if item.Quantity < 0 {
		return nil, errx.BadRequest(cart.ErrInvalidQuantity, "quantity cannot be negative")
	}
	c, err := uc.GetCart(ctx, key)
	if err != nil {
		return nil, err
	}
	if item.Quantity == 0 {
		return uc.remove(ctx, c, item.ProductID, item.VariationID)
	}
	if _, err := uc.resolve(ctx, []dto.CartItem{item}); err != nil {
		return nil, err
	}

	replaced := false
	for i := range c.Items {
		if c.Items[i].SameLine(item.ProductID, item.VariationID) {
			c.Items[i].Quantity = item.Quantity
			replaced = true
			break
		}
	}
	if !replaced {
		c.Items = append(c.Items, item)
	}
	return uc.save(ctx, c)
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, key, productID string, variationID *string) (*dto.Cart, error) {
	c, err := uc.GetCart(ctx, key)
	if err != nil {
		return nil, err
	}
	return uc.remove(ctx, c, productID, variationID)
}

func (uc *cartUseCase) remove(ctx context.Context, c *dto.Cart, productID string, variationID *string) (*dto.Cart, error) {
	kept := c.Items[:0]
	for _, it := range c.Items {
		if !it.SameLine(productID, variationID) {
			kept = append(kept, it)
		}
	}
	c.Items = kept
	return uc.save(ctx, c)
}

func (uc *cartUseCase) save(ctx context.Context, c *dto.Cart) (*dto.Cart, error) {
	sort.SliceStable(c.Items, func(i, j int) bool { return c.Items[i].ProductID < c.Items[j].ProductID })
	c.UpdatedAt = time.Now().UTC()
	if err := uc.store.Save(ctx, c); err != nil {
		uc.logger.Error("failed to save cart", zap.String("cart_id", c.ID), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (uc *cartUseCase) Clear(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return uc.store.Delete(ctx, key)
}
