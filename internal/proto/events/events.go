// Package events defines the integration event contracts exchanged over kafka.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicBookingEvents = "booking.events"
	TopicCatalogEvents = "catalog.events"
)

// Event types.
const (
	BookingCreated          = "sharing.booking.created"
	BookingApproved         = "sharing.booking.approved"
	BookingRejected         = "sharing.booking.rejected"
	ItemAvailabilityChanged = "catalog.item.availability_changed"
)

// Source is the CloudEvent source of events this service emits.
const Source = "service-sharing"

// BookingEvent is the payload of every sharing.booking.* event.
type BookingEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Status     string    `json:"status"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemAvailabilityChangedEvent toggles whether an item can be booked.
type ItemAvailabilityChangedEvent struct {
	ItemID    uuid.UUID `json:"item_id"`
	Available bool      `json:"available"`
}
