// Package memory provides map-backed repositories sharing one lock. Bookings
// resolve their item and booker at read time, the way a join would.
package memory

import (
	"sync"
	"time"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/booking"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/comment"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/item"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/request"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/user"
	"github.com/google/uuid"
)

type userRecord struct {
	id        uuid.UUID
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

type itemRecord struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	requestID   *uuid.UUID
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

type bookingRecord struct {
	id        uuid.UUID
	start     time.Time
	end       time.Time
	itemID    uuid.UUID
	bookerID  uuid.UUID
	status    booking.BookingStatus
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

type commentRecord struct {
	id        uuid.UUID
	itemID    uuid.UUID
	authorID  uuid.UUID
	text      string
	createdAt time.Time
}

type requestRecord struct {
	id          uuid.UUID
	requesterID uuid.UUID
	description string
	createdAt   time.Time
}

// Store holds every table in memory. Deletes follow the foreign keys of the
// SQL schema: bookings restrict, everything else cascades.
type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*userRecord
	items    map[uuid.UUID]*itemRecord
	bookings map[uuid.UUID]*bookingRecord
	comments map[uuid.UUID]*commentRecord
	requests map[uuid.UUID]*requestRecord
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]*userRecord),
		items:    make(map[uuid.UUID]*itemRecord),
		bookings: make(map[uuid.UUID]*bookingRecord),
		comments: make(map[uuid.UUID]*commentRecord),
		requests: make(map[uuid.UUID]*requestRecord),
	}
}

// Users returns a UserRepository over the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Items returns an ItemRepository over the store.
func (s *Store) Items() *ItemRepository { return &ItemRepository{s: s} }

// Bookings returns a BookingRepository over the store.
func (s *Store) Bookings() *BookingRepository { return &BookingRepository{s: s} }

// Comments returns a CommentRepository over the store.
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s: s} }

// Requests returns a RequestRepository over the store.
func (s *Store) Requests() *RequestRepository { return &RequestRepository{s: s} }

// The helpers below expect s.mu to be held.

func (s *Store) toUser(r *userRecord) *user.User {
	return user.Reconstruct(r.id, r.name, r.email, r.createdAt, r.updatedAt)
}

func (s *Store) toItem(r *itemRecord) *item.Item {
	return item.Reconstruct(r.id, r.ownerID, r.name, r.description, r.available, r.requestID, r.version, r.createdAt, r.updatedAt)
}

func (s *Store) toRequest(r *requestRecord) *request.ItemRequest {
	return request.Reconstruct(r.id, r.requesterID, r.description, r.createdAt)
}

// toBooking relies on deletes being restricted while a booking references
// its item or booker, so both records are always present.
func (s *Store) toBooking(r *bookingRecord) *booking.Booking {
	it := s.toItem(s.items[r.itemID])
	booker := s.toUser(s.users[r.bookerID])
	return booking.Reconstruct(r.id, r.start, r.end, it, booker, r.status, r.version, r.createdAt, r.updatedAt)
}

func (s *Store) toComment(r *commentRecord) *comment.Comment {
	authorName := ""
	if ur, ok := s.users[r.authorID]; ok {
		authorName = ur.name
	}
	return comment.Reconstruct(r.id, r.itemID, r.authorID, authorName, r.text, r.createdAt)
}

func (s *Store) ownerOf(r *bookingRecord) uuid.UUID {
	if ir, ok := s.items[r.itemID]; ok {
		return ir.ownerID
	}
	return uuid.Nil
}

func (s *Store) itemBooked(itemID uuid.UUID) bool {
	for _, rec := range s.bookings {
		if rec.itemID == itemID {
			return true
		}
	}
	return false
}

func (s *Store) userBooked(userID uuid.UUID) bool {
	for _, rec := range s.bookings {
		if rec.bookerID == userID || s.ownerOf(rec) == userID {
			return true
		}
	}
	return false
}

func (s *Store) deleteItem(id uuid.UUID) {
	for cid, rec := range s.comments {
		if rec.itemID == id {
			delete(s.comments, cid)
		}
	}
	delete(s.items, id)
}

func (s *Store) deleteRequest(id uuid.UUID) {
	for _, rec := range s.items {
		if rec.requestID != nil && *rec.requestID == id {
			rec.requestID = nil
		}
	}
	delete(s.requests, id)
}
