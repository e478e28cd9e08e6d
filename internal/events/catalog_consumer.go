package events

import (
	"context"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/proto/events"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// AvailabilityUpdater applies catalog availability changes to local items.
type AvailabilityUpdater interface {
	SetAvailability(ctx context.Context, itemID uuid.UUID, available bool) error
}

// CatalogEventConsumer listens to catalog events and keeps item availability in sync.
type CatalogEventConsumer struct {
	consumer *kafka.Consumer
	items    AvailabilityUpdater
	logger   *zap.Logger
}

// NewCatalogEventConsumer creates a new CatalogEventConsumer.
func NewCatalogEventConsumer(
	brokers []string,
	groupID string,
	items AvailabilityUpdater,
	logger *zap.Logger,
) *CatalogEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicCatalogEvents, logger)
	return &CatalogEventConsumer{
		consumer: consumer,
		items:    items,
		logger:   logger,
	}
}

// Start begins consuming catalog events. This blocks until the context is cancelled.
func (c *CatalogEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *CatalogEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *CatalogEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from catalog topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.ItemAvailabilityChanged:
		return c.handleAvailabilityChanged(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled catalog event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *CatalogEventConsumer) handleAvailabilityChanged(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.ItemAvailabilityChangedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse ItemAvailabilityChangedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	err := c.items.SetAvailability(ctx, evt.ItemID, evt.Available)
	switch {
	case err == nil:
		return nil
	case domain.IsNotFound(err):
		c.logger.Warn("availability change for unknown item",
			zap.String("item_id", evt.ItemID.String()),
		)
		return nil
	default:
		c.logger.Error("failed to apply availability change",
			zap.String("item_id", evt.ItemID.String()),
			zap.Error(err),
		)
		return err
	}
}
