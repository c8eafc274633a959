package model

import "time"

const EventOrderPaid = "OrderPaid"

// OrderEvent is the envelope published on the orders topic.
type OrderEvent struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Payload   OrderEventPayload `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}

type OrderEventPayload struct {
	ID               string                  `json:"id"`
	UserID           *string                 `json:"user_id"`
	TotalAmountPence int64                   `json:"total_amount_pence"`
	PaymentProvider  string                  `json:"payment_provider"`
	Items            []OrderEventItemPayload `json:"items"`
}

type OrderEventItemPayload struct {
	ProductID   string  `json:"product_id"`
	VariationID *string `json:"variation_id"`
	Quantity    int     `json:"quantity"`
}
