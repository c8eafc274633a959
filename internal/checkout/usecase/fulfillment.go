package usecase

import (
	"context"
	"encoding/json"
	"time"

	inventorydto "github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StockDecrementer interface {
	DecrementForOrder(ctx context.Context, orderID string, lines []inventorydto.StockLine) ([]inventorydto.StockShortfall, error)
}

type CouponRedeemer interface {
	Redeem(ctx context.Context, code, userID string) error
}

type LoyaltyCreditor interface {
	CreditLoyalty(ctx context.Context, userID string, points int) error
}

const defaultPublishTimeout = 3 * time.Second

type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// fulfill runs the post-payment steps. The customer has paid, so every step
// logs its failure and the rest still run.
func (uc *checkoutUseCase) fulfill(ctx context.Context, o *model.Order, cartKey string) {
	ctx = context.WithoutCancel(ctx)
	log := uc.Logger.With(zap.String("order_id", o.ID))

	lines := make([]inventorydto.StockLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, inventorydto.StockLine{ProductID: it.ProductID, VariationID: it.VariationID, Quantity: it.Quantity})
	}
	if _, err := uc.Inventory.DecrementForOrder(ctx, o.ID, lines); err != nil {
		log.Error("stock decrement failed", zap.Error(err))
	}

	if o.PromoCode != nil && o.UserID != nil {
		if err := uc.Coupons.Redeem(ctx, *o.PromoCode, *o.UserID); err != nil {
			log.Warn("promo code redemption failed", zap.String("promo_code", *o.PromoCode), zap.Error(err))
		}
	}

	if o.UserID != nil && o.PointsEarned > 0 {
		if err := uc.Accounts.CreditLoyalty(ctx, *o.UserID, o.PointsEarned); err != nil {
			log.Error("loyalty credit failed", zap.Int("points", o.PointsEarned), zap.Error(err))
		}
	}

	uc.publishPaid(ctx, o, log)

	if cartKey != "" {
		if err := uc.Carts.Clear(ctx, cartKey); err != nil {
			log.Warn("failed to clear cart", zap.Error(err))
		}
	}
}

func (uc *checkoutUseCase) publishPaid(ctx context.Context, o *model.Order, log logger.ZapLogger) {
	if uc.Events == nil {
		return
	}
	payload := model.OrderEventPayload{
		ID:               o.ID,
		UserID:           o.UserID,
		TotalAmountPence: o.TotalAmountPence,
		PaymentProvider:  o.PaymentProvider,
		Items:            make([]model.OrderEventItemPayload, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		payload.Items = append(payload.Items, model.OrderEventItemPayload{
			ProductID:   it.ProductID,
			VariationID: it.VariationID,
			Quantity:    it.Quantity,
		})
	}

	data, err := json.Marshal(model.OrderEvent{
		EventID:   uuid.New().String(),
		EventType: model.EventOrderPaid,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Error("failed to encode order event", zap.Error(err))
		return
	}
	timeout := uc.PublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := uc.Events.Publish(ctx, o.ID, data); err != nil {
		log.Error("failed to publish order event", zap.Error(err))
	}
}
