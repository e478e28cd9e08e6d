package events

import (
	"context"
	"errors"
	"testing"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/proto/events"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockUpdater struct {
	mock.Mock
}

func (m *mockUpdater) SetAvailability(ctx context.Context, itemID uuid.UUID, available bool) error {
	args := m.Called(ctx, itemID, available)
	return args.Error(0)
}

func newTestConsumer(items AvailabilityUpdater) *CatalogEventConsumer {
	return &CatalogEventConsumer{items: items, logger: zap.NewNop()}
}

func availabilityMessage(t *testing.T, itemID uuid.UUID, available bool) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("service-catalog", events.ItemAvailabilityChanged,
		events.ItemAvailabilityChangedEvent{ItemID: itemID, Available: available})
	require.NoError(t, err)
	raw, err := ce.Marshal()
	require.NoError(t, err)
	return kafkago.Message{Topic: events.TopicCatalogEvents, Value: raw}
}

func TestHandleAvailabilityChanged(t *testing.T) {
	itemID := uuid.New()
	updater := &mockUpdater{}
	updater.On("SetAvailability", mock.Anything, itemID, false).Return(nil).Once()

	err := newTestConsumer(updater).handleMessage(context.Background(), availabilityMessage(t, itemID, false))

	require.NoError(t, err)
	updater.AssertExpectations(t)
}

func TestHandleAvailabilityChangedUnknownItem(t *testing.T) {
	itemID := uuid.New()
	updater := &mockUpdater{}
	updater.On("SetAvailability", mock.Anything, itemID, true).
		Return(domain.NewNotFoundError("item", itemID.String()))

	err := newTestConsumer(updater).handleMessage(context.Background(), availabilityMessage(t, itemID, true))

	assert.NoError(t, err)
}

func TestHandleAvailabilityChangedStorageFailure(t *testing.T) {
	itemID := uuid.New()
	updater := &mockUpdater{}
	updater.On("SetAvailability", mock.Anything, itemID, true).Return(errors.New("connection reset"))

	err := newTestConsumer(updater).handleMessage(context.Background(), availabilityMessage(t, itemID, true))

	assert.Error(t, err)
}

func TestHandleMessageIgnoresMalformedAndUnknown(t *testing.T) {
	updater := &mockUpdater{}
	c := newTestConsumer(updater)

	assert.NoError(t, c.handleMessage(context.Background(), kafkago.Message{Value: []byte("{not json")}))

	ce, err := kafka.NewCloudEvent("service-catalog", "catalog.item.renamed", map[string]string{"name": "x"})
	require.NoError(t, err)
	raw, err := ce.Marshal()
	require.NoError(t, err)
	assert.NoError(t, c.handleMessage(context.Background(), kafkago.Message{Value: raw}))

	bad := kafka.CloudEvent{Type: events.ItemAvailabilityChanged, Data: []byte(`"oops"`)}
	raw, err = bad.Marshal()
	require.NoError(t, err)
	assert.NoError(t, c.handleMessage(context.Background(), kafkago.Message{Value: raw}))

	updater.AssertNotCalled(t, "SetAvailability", mock.Anything, mock.Anything, mock.Anything)
}
