package booking

import (
	"context"
	"time"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
// Every listing method returns bookings ordered by start descending.
type BookingRepository interface {
	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByIDForParticipant retrieves a booking only if userID is its booker
	// or its item's owner; otherwise it reports NotFound.
	FindByIDForParticipant(ctx context.Context, id, userID uuid.UUID) (*Booking, error)

	FindAll(ctx context.Context, subject Subject, page domain.Page) ([]*Booking, error)
	FindCurrent(ctx context.Context, subject Subject, now time.Time, page domain.Page) ([]*Booking, error)
	FindPast(ctx context.Context, subject Subject, now time.Time, page domain.Page) ([]*Booking, error)
	FindFuture(ctx context.Context, subject Subject, now time.Time, page domain.Page) ([]*Booking, error)
	FindByStatus(ctx context.Context, subject Subject, status BookingStatus, page domain.Page) ([]*Booking, error)

	// UpdateStatus writes the booking's status unless the stored row is
	// already APPROVED, in which case it reports NotAllowed. The check and
	// the write happen in one statement.
	UpdateStatus(ctx context.Context, booking *Booking) error

	// ExistsCompleted reports whether bookerID has an APPROVED booking of
	// itemID that ended before now.
	ExistsCompleted(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error)

	// FindLatestApprovedBefore returns the approved booking of itemID with the
	// greatest start before now, provided ownerID owns the item. It returns
	// nil when there is none.
	FindLatestApprovedBefore(ctx context.Context, itemID, ownerID uuid.UUID, now time.Time) (*Booking, error)

	// FindEarliestApprovedAfter returns the approved booking of itemID with
	// the smallest start after now, provided ownerID owns the item. It
	// returns nil when there is none.
	FindEarliestApprovedAfter(ctx context.Context, itemID, ownerID uuid.UUID, now time.Time) (*Booking, error)

	// FindLastAndNext computes both projections for many items at once.
	// Items without any match are absent from the map.
	FindLastAndNext(ctx context.Context, itemIDs []uuid.UUID, ownerID uuid.UUID, now time.Time) (map[uuid.UUID]LastNext, error)
}
