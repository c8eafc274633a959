package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	cartdto "github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/payment/square"
	"github.com/fekuna/omnipos-storefront-service/internal/payment/stripe"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StripeGateway interface {
	CreateSession(ctx context.Context, p *stripe.SessionParams) (*stripe.Session, error)
	GetSession(ctx context.Context, id string) (*stripe.Session, error)
	ParseWebhook(payload []byte, signature string) (*stripe.WebhookEvent, error)
}

type SquareGateway interface {
	CreatePayment(ctx context.Context, req *square.PaymentRequest) (*square.Payment, error)
}

// Deps wires the checkout pipeline. Stripe, Square, Events and Metrics may
// be nil; the matching features are then disabled.
type Deps struct {
	Carts          cart.UseCase
	Orders         order.UseCase
	Inventory      StockDecrementer
	Coupons        CouponRedeemer
	Accounts       LoyaltyCreditor
	Events         EventPublisher
	PublishTimeout time.Duration
	Stripe         StripeGateway
	Square         SquareGateway
	Metrics        *metrics.Recorder
	DefaultCountry string
	Logger         logger.ZapLogger
}

type checkoutUseCase struct {
	Deps
}

func NewCheckoutUseCase(deps Deps) checkout.UseCase {
	return &checkoutUseCase{Deps: deps}
}

func notConfigured(provider string) error {
	return errx.New(fmt.Errorf("%w: %s", checkout.ErrProviderNotConfigured, provider),
		http.StatusServiceUnavailable, errx.CodeBusy, provider+" payments are not available")
}

// prepare validates the shipping details and prices the cart.
func (uc *checkoutUseCase) prepare(ctx context.Context, in *dto.CheckoutInput) (*cartdto.Quote, error) {
	if in.GuestCheckout {
		in.UserID = ""
	}
	addr := &in.ShippingAddress
	addr.Email = strings.TrimSpace(addr.Email)
	addr.FullName = strings.TrimSpace(addr.FullName)
	addr.AddressLine1 = strings.TrimSpace(addr.AddressLine1)
	addr.AddressLine2 = strings.TrimSpace(addr.AddressLine2)
	addr.City = strings.TrimSpace(addr.City)
	addr.Postcode = strings.ToUpper(strings.TrimSpace(addr.Postcode))
	addr.Country = strings.TrimSpace(addr.Country)
	if addr.Country == "" {
		addr.Country = uc.DefaultCountry
	}

	required := []struct{ field, value string }{
		{"email", addr.Email},
		{"full_name", addr.FullName},
		{"address_line1", addr.AddressLine1},
		{"city", addr.City},
		{"postcode", addr.Postcode},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, errx.BadRequest(fmt.Errorf("%w: %s", checkout.ErrMissingShippingField, f.field), f.field+" is required")
		}
	}
	if _, err := mail.ParseAddress(addr.Email); err != nil {
		return nil, errx.BadRequest(fmt.Errorf("%w: email", checkout.ErrMissingShippingField), "a valid email is required")
	}

	quote, err := uc.Carts.Quote(ctx, &cartdto.QuoteInput{
		Items:     in.Items,
		PromoCode: in.PromoCode,
		UserID:    in.UserID,
	})
	if err != nil {
		return nil, err
	}
	if quote.TotalPence <= 0 {
		return nil, errx.BadRequest(checkout.ErrZeroTotal, "order total must be greater than zero")
	}
	return quote, nil
}

func buildOrder(id string, in *dto.CheckoutInput, q *cartdto.Quote, provider, status string) *model.Order {
	o := &model.Order{
		BaseModel:        model.BaseModel{ID: id},
		SubtotalPence:    q.SubtotalPence,
		DiscountPence:    q.DiscountPence,
		ShippingPence:    q.ShippingPence,
		TotalAmountPence: q.TotalPence,
		Status:           status,
		ShippingAddress:  in.ShippingAddress,
		PointsEarned:     q.PointsEarned,
		PaymentProvider:  provider,
	}
	if in.UserID != "" {
		userID := in.UserID
		o.UserID = &userID
	} else {
		email := in.ShippingAddress.Email
		o.GuestEmail = &email
	}
	if q.PromoCode != "" {
		code := q.PromoCode
		o.PromoCode = &code
	}
	for _, l := range q.Lines {
		o.Items = append(o.Items, model.OrderItem{
			ProductID:   l.ProductID,
			VariationID: l.VariationID,
			Name:        l.DisplayName(),
			Quantity:    l.Quantity,
			PricePence:  l.DiscountedUnitPence,
		})
	}
	return o
}

func (uc *checkoutUseCase) CreateStripeSession(ctx context.Context, input *dto.StripeSessionInput) (res *dto.StripeSessionResult, err error) {
	defer uc.Metrics.Since("checkout.stripe_session", time.Now(), &err)
	if uc.Stripe == nil {
		return nil, notConfigured("stripe")
	}

	quote, err := uc.prepare(ctx, &input.CheckoutInput)
	if err != nil {
		return nil, err
	}
	orderID := uuid.New().String()

	lines := make([]stripe.LineItem, 0, len(quote.Lines)+1)
	for _, l := range quote.Lines {
		item := stripe.LineItem{Name: l.DisplayName(), UnitAmount: l.DiscountedUnitPence, Quantity: int64(l.Quantity)}
		if l.ImageURL != nil {
			item.ImageURL = *l.ImageURL
		}
		lines = append(lines, item)
	}
	if quote.ShippingPence > 0 {
		lines = append(lines, stripe.LineItem{Name: "Shipping", UnitAmount: quote.ShippingPence, Quantity: 1})
	}

	origin := strings.TrimRight(input.Origin, "/")
	metadata := map[string]string{
		"order_id":       orderID,
		"user_id":        input.UserID,
		"guest_checkout": strconv.FormatBool(input.UserID == ""),
		"promo_code":     quote.PromoCode,
	}
	if input.CartKey != "" {
		metadata["cart_key"] = input.CartKey
	}

	start := time.Now()
	session, err := uc.Stripe.CreateSession(ctx, &stripe.SessionParams{
		Currency:       quote.Currency,
		CustomerEmail:  input.ShippingAddress.Email,
		SuccessURL:     origin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      origin + "/cart",
		Lines:          lines,
		Metadata:       metadata,
		IdempotencyKey: orderID,
	})
	uc.Metrics.Observe("payment.stripe.create_session", time.Since(start), err)
	if err != nil {
		uc.Logger.Error("stripe session creation failed", zap.String("order_id", orderID), zap.Error(err))
		return nil, errx.PaymentFailed(err, "could not start checkout, please try again")
	}

	sessionID := session.ID
	o := buildOrder(orderID, &input.CheckoutInput, quote, model.ProviderStripe, model.OrderStatusPending)
	o.PaymentReference = &sessionID
	if err := uc.Orders.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	uc.Logger.Info("stripe checkout started",
		zap.String("order_id", orderID),
		zap.String("session_id", sessionID),
		zap.Int64("total_pence", o.TotalAmountPence))
	return &dto.StripeSessionResult{URL: session.URL, SessionID: sessionID, OrderID: orderID}, nil
}

func (uc *checkoutUseCase) ConfirmStripeSession(ctx context.Context, sessionID string) (o *model.Order, err error) {
	defer uc.Metrics.Since("checkout.stripe_confirm", time.Now(), &err)
	if uc.Stripe == nil {
		return nil, notConfigured("stripe")
	}

	o, err = uc.Orders.GetByPaymentReference(ctx, model.ProviderStripe, sessionID)
	if err != nil {
		return nil, err
	}
	if o.Status != model.OrderStatusPending {
		return o, nil
	}

	start := time.Now()
	session, err := uc.Stripe.GetSession(ctx, sessionID)
	uc.Metrics.Observe("payment.stripe.get_session", time.Since(start), err)
	if err != nil {
		return nil, errx.PaymentFailed(err, "could not verify payment")
	}
	return uc.confirmPaid(ctx, session, o)
}

func (uc *checkoutUseCase) confirmPaid(ctx context.Context, session *stripe.Session, o *model.Order) (*model.Order, error) {
	if !session.Paid() {
		return nil, errx.PaymentFailed(checkout.ErrPaymentNotCompleted, "payment has not completed yet")
	}
	if o.Status != model.OrderStatusPending {
		return o, nil
	}

	ok, err := uc.Orders.MarkPaid(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// a concurrent confirmation won the transition
		return uc.Orders.GetOrder(ctx, o.ID)
	}

	o.Status = model.OrderStatusPaid
	uc.Logger.Info("stripe order paid", zap.String("order_id", o.ID), zap.String("session_id", session.ID))
	uc.fulfill(ctx, o, session.Metadata["cart_key"])
	return o, nil
}

func (uc *checkoutUseCase) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	if uc.Stripe == nil {
		return notConfigured("stripe")
	}
	event, err := uc.Stripe.ParseWebhook(payload, signature)
	if err != nil {
		uc.Logger.Warn("rejected stripe webhook", zap.Error(err))
		return errx.BadRequest(fmt.Errorf("%w: %v", checkout.ErrInvalidWebhook, err), "invalid webhook signature")
	}

	switch event.Type {
	case stripe.EventCheckoutCompleted, stripe.EventAsyncPaymentSucceeded:
	default:
		uc.Logger.Debug("ignoring stripe event", zap.String("event_type", event.Type))
		return nil
	}
	if event.Session == nil {
		return nil
	}

	o, err := uc.Orders.GetByPaymentReference(ctx, model.ProviderStripe, event.Session.ID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			uc.Logger.Warn("stripe session without order", zap.String("session_id", event.Session.ID))
			return nil
		}
		return err
	}

	_, err = uc.confirmPaid(ctx, event.Session, o)
	if errors.Is(err, checkout.ErrPaymentNotCompleted) {
		// async methods complete later with checkout.session.async_payment_succeeded
		return nil
	}
	return err
}

func (uc *checkoutUseCase) ChargeSquare(ctx context.Context, input *dto.SquarePaymentInput) (res *dto.SquarePaymentResult, err error) {
	defer uc.Metrics.Since("checkout.square_payment", time.Now(), &err)
	if uc.Square == nil {
		return nil, notConfigured("square")
	}
	if strings.TrimSpace(input.SourceID) == "" {
		return nil, errx.BadRequest(checkout.ErrMissingPaymentSource, "payment source is required")
	}

	quote, err := uc.prepare(ctx, &input.CheckoutInput)
	if err != nil {
		return nil, err
	}
	orderID := uuid.New().String()
	idempotencyKey := input.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = uuid.New().String()
	}

	start := time.Now()
	payment, err := uc.Square.CreatePayment(ctx, &square.PaymentRequest{
		SourceID:       input.SourceID,
		AmountPence:    quote.TotalPence,
		Currency:       quote.Currency,
		IdempotencyKey: idempotencyKey,
		BuyerEmail:     input.ShippingAddress.Email,
		ReferenceID:    orderID,
	})
	uc.Metrics.Observe("payment.square.create_payment", time.Since(start), err)
	if err != nil {
		uc.Logger.Warn("square payment failed", zap.String("order_id", orderID), zap.Error(err))
		var apiErr *square.APIError
		if errors.As(err, &apiErr) {
			return nil, errx.PaymentFailed(err, apiErr.Error())
		}
		return nil, errx.PaymentFailed(err, "Payment failed")
	}

	paymentID := payment.ID
	o := buildOrder(orderID, &input.CheckoutInput, quote, model.ProviderSquare, model.OrderStatusPaid)
	o.PaymentReference = &paymentID
	if err := uc.Orders.CreateOrder(ctx, o); err != nil {
		uc.Logger.Error("square payment captured but order not saved",
			zap.String("payment_id", paymentID),
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil, err
	}

	uc.Logger.Info("square order paid", zap.String("order_id", orderID), zap.String("payment_id", paymentID))
	uc.fulfill(ctx, o, input.CartKey)
	return &dto.SquarePaymentResult{Success: true, PaymentID: paymentID, OrderID: orderID}, nil
}
