// Package mocks holds testify mocks of the checkout interfaces and the
// payment gateways it drives.
package mocks

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/payment/square"
	"github.com/fekuna/omnipos-storefront-service/internal/payment/stripe"
	"github.com/stretchr/testify/mock"
)

type UseCase struct {
	mock.Mock
}

func (m *UseCase) CreateStripeSession(ctx context.Context, input *dto.StripeSessionInput) (*dto.StripeSessionResult, error) {
	args := m.Called(ctx, input)
	r, _ := args.Get(0).(*dto.StripeSessionResult)
	return r, args.Error(1)
}

func (m *UseCase) ConfirmStripeSession(ctx context.Context, sessionID string) (*model.Order, error) {
	args := m.Called(ctx, sessionID)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *UseCase) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	return m.Called(ctx, payload, signature).Error(0)
}

func (m *UseCase) ChargeSquare(ctx context.Context, input *dto.SquarePaymentInput) (*dto.SquarePaymentResult, error) {
	args := m.Called(ctx, input)
	r, _ := args.Get(0).(*dto.SquarePaymentResult)
	return r, args.Error(1)
}

type StripeGateway struct {
	mock.Mock
}

func (m *StripeGateway) CreateSession(ctx context.Context, p *stripe.SessionParams) (*stripe.Session, error) {
	args := m.Called(ctx, p)
	s, _ := args.Get(0).(*stripe.Session)
	return s, args.Error(1)
}

func (m *StripeGateway) GetSession(ctx context.Context, id string) (*stripe.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*stripe.Session)
	return s, args.Error(1)
}

func (m *StripeGateway) ParseWebhook(payload []byte, signature string) (*stripe.WebhookEvent, error) {
	args := m.Called(payload, signature)
	e, _ := args.Get(0).(*stripe.WebhookEvent)
	return e, args.Error(1)
}

type SquareGateway struct {
	mock.Mock
}

func (m *SquareGateway) CreatePayment(ctx context.Context, req *square.PaymentRequest) (*square.Payment, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*square.Payment)
	return p, args.Error(1)
}
