package booking

import (
	"fmt"
	"time"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/item"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
)

// Booking is the aggregate root for a reservation of one item by one user.
type Booking struct {
	id        uuid.UUID
	start     time.Time
	end       time.Time
	item      *item.Item
	booker    *user.User
	status    BookingStatus
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// ValidateRange rejects inverted and empty time windows.
func ValidateRange(start, end time.Time) error {
	if end.Before(start) {
		return domain.NewInvalidRangeError("booking end must not be before its start")
	}
	if end.Equal(start) {
		return domain.NewInvalidRangeError("booking end must not equal its start")
	}
	return nil
}

// NewBooking creates a Booking in WAITING status.
func NewBooking(start, end time.Time, it *item.Item, booker *user.User, now time.Time) (*Booking, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}
	if it == nil || booker == nil {
		return nil, fmt.Errorf("booking requires an item and a booker")
	}

	now = now.UTC()
	return &Booking{
		id:        uuid.New(),
		start:     start.UTC(),
		end:       end.UTC(),
		item:      it,
		booker:    booker,
		status:    StatusWaiting,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	start, end time.Time,
	it *item.Item,
	booker *user.User,
	status BookingStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		start:     start,
		end:       end,
		item:      it,
		booker:    booker,
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) Start() time.Time      { return b.start }
func (b *Booking) End() time.Time        { return b.end }
func (b *Booking) Item() *item.Item      { return b.item }
func (b *Booking) Booker() *user.User    { return b.booker }
func (b *Booking) Status() BookingStatus { return b.status }
func (b *Booking) Version() int64        { return b.version }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }

// ItemID returns the id of the booked item.
func (b *Booking) ItemID() uuid.UUID { return b.item.ID() }

// BookerID returns the id of the user who made the booking.
func (b *Booking) BookerID() uuid.UUID { return b.booker.ID() }

// OwnerID returns the id of the booked item's owner.
func (b *Booking) OwnerID() uuid.UUID { return b.item.OwnerID() }

// --- Behavior ---

// IsParticipant reports whether userID is the booker or the item owner.
func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return b.BookerID() == userID || b.OwnerID() == userID
}

// Decide records the owner's verdict. An approved booking can no longer change.
func (b *Booking) Decide(approved bool, now time.Time) error {
	target := StatusRejected
	if approved {
		target = StatusApproved
	}
	if !b.status.CanTransitionTo(target) {
		return domain.NewNotAllowedError("cannot change status of an approved booking")
	}
	b.status = target
	b.version++
	b.updatedAt = now.UTC()
	return nil
}

// InState reports whether the booking belongs to the given partition at now.
func (b *Booking) InState(state State, now time.Time) bool {
	switch state {
	case StateAll:
		return true
	case StateCurrent:
		return !b.start.After(now) && !b.end.Before(now)
	case StatePast:
		return b.end.Before(now)
	case StateFuture:
		return b.start.After(now)
	case StateWaiting:
		return b.status == StatusWaiting
	case StateRejected:
		return b.status == StatusRejected
	default:
		return false
	}
}

// IsCompletedBy reports whether bookerID finished an approved booking before now.
func (b *Booking) IsCompletedBy(bookerID uuid.UUID, now time.Time) bool {
	return b.BookerID() == bookerID && b.status == StatusApproved && b.end.Before(now)
}
