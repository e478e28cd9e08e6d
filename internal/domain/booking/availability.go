package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LastNext annotates an item with its most recent and upcoming approved
// bookings. Either side may be nil.
type LastNext struct {
	Last *Booking
	Next *Booking
}

// AvailabilityProjector derives last/next approved bookings per item. Only
// the item owner sees them; any other viewer gets an empty LastNext.
type AvailabilityProjector struct {
	repo BookingRepository
}

// NewAvailabilityProjector creates an AvailabilityProjector.
func NewAvailabilityProjector(repo BookingRepository) *AvailabilityProjector {
	return &AvailabilityProjector{repo: repo}
}

// Project computes last/next for a single item as seen by viewerID at now.
func (p *AvailabilityProjector) Project(ctx context.Context, itemID, viewerID uuid.UUID, now time.Time) (LastNext, error) {
	last, err := p.repo.FindLatestApprovedBefore(ctx, itemID, viewerID, now)
	if err != nil {
		return LastNext{}, err
	}
	next, err := p.repo.FindEarliestApprovedAfter(ctx, itemID, viewerID, now)
	if err != nil {
		return LastNext{}, err
	}
	return LastNext{Last: last, Next: next}, nil
}

// ProjectMany computes last/next for several items with a single repository
// call. Every requested item is present in the result.
func (p *AvailabilityProjector) ProjectMany(ctx context.Context, itemIDs []uuid.UUID, viewerID uuid.UUID, now time.Time) (map[uuid.UUID]LastNext, error) {
	out := make(map[uuid.UUID]LastNext, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	found, err := p.repo.FindLastAndNext(ctx, itemIDs, viewerID, now)
	if err != nil {
		return nil, err
	}
	for _, id := range itemIDs {
		out[id] = found[id]
	}
	return out, nil
}
