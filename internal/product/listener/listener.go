package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// CatalogListener keeps the search index and list cache in step with stock
// sold through checkout.
type CatalogListener struct {
	consumer MessageReader
	uc       product.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewCatalogListener(consumer MessageReader, uc product.UseCase, logger logger.ZapLogger) *CatalogListener {
	return &CatalogListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

func (l *CatalogListener) Start(ctx context.Context) {
	l.logger.Info("Starting catalog Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping catalog Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *CatalogListener) processMessage(ctx context.Context, value []byte) {
	var event model.OrderEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != model.EventOrderPaid {
		return
	}

	l.logger.Info("Processing OrderPaid event", zap.String("order_id", event.Payload.ID))

	seen := map[string]bool{}
	ids := []string{}
	for _, item := range event.Payload.Items {
		if item.ProductID == "" || seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		ids = append(ids, item.ProductID)
	}

	if err := l.uc.RefreshProducts(ctx, ids); err != nil {
		l.logger.Error("Failed to refresh products for order",
			zap.String("order_id", event.Payload.ID),
			zap.Error(err),
		)
	}
}
