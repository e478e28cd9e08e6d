package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/booking"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
)

// BookingRepository is the in-memory implementation of booking.BookingRepository.
type BookingRepository struct {
	s *Store
}

var _ booking.BookingRepository = (*BookingRepository)(nil)

func (r *BookingRepository) Save(_ context.Context, b *booking.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.bookings[b.ID()] = &bookingRecord{
		id:        b.ID(),
		start:     b.Start(),
		end:       b.End(),
		itemID:    b.ItemID(),
		bookerID:  b.BookerID(),
		status:    b.Status(),
		version:   b.Version(),
		createdAt: b.CreatedAt(),
		updatedAt: b.UpdatedAt(),
	}
	return nil
}

func (r *BookingRepository) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return r.s.toBooking(rec), nil
}

func (r *BookingRepository) FindByIDForParticipant(_ context.Context, id, userID uuid.UUID) (*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if rec, ok := r.s.bookings[id]; ok {
		if b := r.s.toBooking(rec); b.IsParticipant(userID) {
			return b, nil
		}
	}
	return nil, domain.NewNotFoundError("Booking", id.String())
}

func (r *BookingRepository) FindAll(_ context.Context, subject booking.Subject, page domain.Page) ([]*booking.Booking, error) {
	return r.inState(subject, booking.StateAll, time.Time{}, page), nil
}

func (r *BookingRepository) FindCurrent(_ context.Context, subject booking.Subject, now time.Time, page domain.Page) ([]*booking.Booking, error) {
	return r.inState(subject, booking.StateCurrent, now, page), nil
}

func (r *BookingRepository) FindPast(_ context.Context, subject booking.Subject, now time.Time, page domain.Page) ([]*booking.Booking, error) {
	return r.inState(subject, booking.StatePast, now, page), nil
}

func (r *BookingRepository) FindFuture(_ context.Context, subject booking.Subject, now time.Time, page domain.Page) ([]*booking.Booking, error) {
	return r.inState(subject, booking.StateFuture, now, page), nil
}

func (r *BookingRepository) FindByStatus(_ context.Context, subject booking.Subject, status booking.BookingStatus, page domain.Page) ([]*booking.Booking, error) {
	return r.list(subject, page, func(b *booking.Booking) bool { return b.Status() == status }), nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, b *booking.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.bookings[b.ID()]
	if !ok {
		return domain.NewNotFoundError("Booking", b.ID().String())
	}
	if rec.status.IsLocked() {
		return domain.NewNotAllowedError("cannot change status of an approved booking")
	}
	rec.status = b.Status()
	rec.version++
	rec.updatedAt = b.UpdatedAt()
	return nil
}

func (r *BookingRepository) ExistsCompleted(_ context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rec := range r.s.bookings {
		if rec.itemID != itemID {
			continue
		}
		if r.s.toBooking(rec).IsCompletedBy(bookerID, now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *BookingRepository) FindLatestApprovedBefore(_ context.Context, itemID, ownerID uuid.UUID, now time.Time) (*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.lastNext(itemID, ownerID, now).Last, nil
}

func (r *BookingRepository) FindEarliestApprovedAfter(_ context.Context, itemID, ownerID uuid.UUID, now time.Time) (*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.lastNext(itemID, ownerID, now).Next, nil
}

func (r *BookingRepository) FindLastAndNext(_ context.Context, itemIDs []uuid.UUID, ownerID uuid.UUID, now time.Time) (map[uuid.UUID]booking.LastNext, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make(map[uuid.UUID]booking.LastNext, len(itemIDs))
	for _, id := range itemIDs {
		if ln := r.lastNext(id, ownerID, now); ln.Last != nil || ln.Next != nil {
			out[id] = ln
		}
	}
	return out, nil
}

// lastNext expects s.mu to be held.
func (r *BookingRepository) lastNext(itemID, ownerID uuid.UUID, now time.Time) booking.LastNext {
	var last, next *bookingRecord
	for _, rec := range r.s.bookings {
		if rec.itemID != itemID || rec.status != booking.StatusApproved || r.s.ownerOf(rec) != ownerID {
			continue
		}
		switch {
		case rec.start.Before(now):
			if last == nil || rec.start.After(last.start) {
				last = rec
			}
		case rec.start.After(now):
			if next == nil || rec.start.Before(next.start) {
				next = rec
			}
		}
	}

	var ln booking.LastNext
	if last != nil {
		ln.Last = r.s.toBooking(last)
	}
	if next != nil {
		ln.Next = r.s.toBooking(next)
	}
	return ln
}

func (r *BookingRepository) inState(subject booking.Subject, state booking.State, now time.Time, page domain.Page) []*booking.Booking {
	return r.list(subject, page, func(b *booking.Booking) bool { return b.InState(state, now) })
}

func (r *BookingRepository) list(subject booking.Subject, page domain.Page, keep func(*booking.Booking) bool) []*booking.Booking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*booking.Booking
	for _, rec := range r.s.bookings {
		if !r.belongsTo(rec, subject) {
			continue
		}
		if b := r.s.toBooking(rec); keep(b) {
			matched = append(matched, b)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Start().Equal(matched[j].Start()) {
			return matched[i].ID().String() < matched[j].ID().String()
		}
		return matched[i].Start().After(matched[j].Start())
	})
	return domain.Apply(matched, page)
}

func (r *BookingRepository) belongsTo(rec *bookingRecord, subject booking.Subject) bool {
	if subject.Role == booking.RoleOwner {
		return r.s.ownerOf(rec) == subject.UserID
	}
	return rec.bookerID == subject.UserID
}
