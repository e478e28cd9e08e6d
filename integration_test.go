//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/application"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/proto/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddBooking_PublishesCreatedEvent verifies that a new booking is stored
// as WAITING and announced on booking.events.
func TestAddBooking_PublishesCreatedEvent(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupSharingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ownerID, bookerID, itemID := seedOwnerWithItem(t, stack)

	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	bk, err := stack.Bookings.AddBooking(context.Background(), bookerID, application.CreateBookingRequest{
		ItemID: itemID,
		Start:  start,
		End:    start.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "WAITING", bk.Status)

	// Assert: BookingCreated on booking.events.
	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents,
		events.BookingCreated, 15*time.Second)

	var created events.BookingEvent
	require.NoError(t, ce.ParseData(&created))
	assert.Equal(t, bk.ID, created.BookingID)
	assert.Equal(t, itemID, created.ItemID)
	assert.Equal(t, bookerID, created.BookerID)
	assert.Equal(t, ownerID, created.OwnerID)
	assert.Equal(t, bk.ID.String(), ce.Subject)

	// Approving publishes the decision.
	_, err = stack.Bookings.ApproveBooking(context.Background(), ownerID, bk.ID, true)
	require.NoError(t, err)
	ce = consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents,
		events.BookingApproved, 15*time.Second)
	var approved events.BookingEvent
	require.NoError(t, ce.ParseData(&approved))
	assert.Equal(t, "APPROVED", approved.Status)
}

// TestItemAvailabilityChanged_GatesBooking verifies that a catalog event
// withdrawing an item is applied locally and blocks new bookings.
func TestItemAvailabilityChanged_GatesBooking(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupSharingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	_, bookerID, itemID := seedOwnerWithItem(t, stack)

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	// Unknown items are skipped, not retried.
	publishTestEvent(t, infra.KafkaBrokers, events.TopicCatalogEvents, "service-catalog",
		events.ItemAvailabilityChanged, events.ItemAvailabilityChangedEvent{ItemID: uuid.New(), Available: false})

	publishTestEvent(t, infra.KafkaBrokers, events.TopicCatalogEvents, "service-catalog",
		events.ItemAvailabilityChanged, events.ItemAvailabilityChangedEvent{ItemID: itemID, Available: false})

	model := waitForItemAvailability(t, infra.DB, itemID, false, 15*time.Second)
	assert.Equal(t, int64(2), model.Version)

	start := time.Now().UTC().Add(time.Hour)
	_, err := stack.Bookings.AddBooking(context.Background(), bookerID, application.CreateBookingRequest{
		ItemID: itemID,
		Start:  start,
		End:    start.Add(time.Hour),
	})
	assert.True(t, domain.IsNotAllowed(err), "got %v", err)
}
