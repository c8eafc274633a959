package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"pgregory.net/rapid"
)

type staticProducts map[string]*model.Product

func (s staticProducts) GetProducts(_ context.Context, ids []string) (map[string]*model.Product, error) {
	out := make(map[string]*model.Product, len(ids))
	for _, id := range ids {
		if p, ok := s[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fixedCoupon int

func (f fixedCoupon) ValidateCode(_ context.Context, code, _ string) (*model.Coupon, error) {
	return &model.Coupon{Code: code, DiscountPercentage: int(f)}, nil
}

func TestQuote_TotalsProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "lines")
		products := staticProducts{}
		items := make([]dto.CartItem, 0, n)
		for i := 0; i < n; i++ {
			id := fmt.Sprintf("tea-%d", i)
			products[id] = &model.Product{
				BaseModel:     model.BaseModel{ID: id},
				Name:          id,
				PricePence:    rapid.Int64Range(1, 20000).Draw(rt, "price"),
				StockQuantity: 50,
				IsActive:      true,
			}
			items = append(items, dto.CartItem{ProductID: id, Quantity: rapid.IntRange(1, 10).Draw(rt, "qty")})
		}
		pct := rapid.IntRange(0, 100).Draw(rt, "discount")
		userID := rapid.SampledFrom([]string{"", "user-1"}).Draw(rt, "user")

		input := &dto.QuoteInput{Items: items, UserID: userID}
		if pct > 0 {
			input.PromoCode = "PROMO"
		}
		uc := NewCartUseCase(nil, products, fixedCoupon(pct), pricing, logger.NewNop())
		q, err := uc.Quote(context.Background(), input)
		if err != nil {
			rt.Fatalf("quote: %v", err)
		}

		var lines int64
		for _, l := range q.Lines {
			if l.DiscountedUnitPence > l.UnitPricePence || l.DiscountedUnitPence < 0 {
				rt.Fatalf("discounted unit %d outside [0, %d]", l.DiscountedUnitPence, l.UnitPricePence)
			}
			lines += l.LineTotalPence
		}
		if lines != q.SubtotalPence-q.DiscountPence {
			rt.Fatalf("line totals %d != subtotal %d - discount %d", lines, q.SubtotalPence, q.DiscountPence)
		}
		if q.TotalPence != q.SubtotalPence-q.DiscountPence+q.ShippingPence {
			rt.Fatalf("total %d does not add up", q.TotalPence)
		}
		wantShipping := pricing.ShippingFee
		if q.SubtotalPence >= pricing.FreeShippingThreshold {
			wantShipping = 0
		}
		if q.ShippingPence != wantShipping {
			rt.Fatalf("shipping %d for subtotal %d", q.ShippingPence, q.SubtotalPence)
		}
		wantPoints := 0
		if userID != "" {
			wantPoints = int(q.TotalPence / pricing.PencePerLoyaltyPoint)
		}
		if q.PointsEarned != wantPoints {
			rt.Fatalf("points %d, want %d", q.PointsEarned, wantPoints)
		}
	})
}
