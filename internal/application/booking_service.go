package application

import (
	"context"
	"fmt"
	"time"

	bookingDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/booking"
	itemDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/item"
	userDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/clock"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/proto/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// partitionQuery fetches one partition of a subject's bookings.
type partitionQuery func(ctx context.Context, subject bookingDomain.Subject, now time.Time, page domain.Page) ([]*bookingDomain.Booking, error)

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	bookings   bookingDomain.BookingRepository
	users      userDomain.UserRepository
	items      itemDomain.ItemRepository
	producer   kafka.Publisher
	clock      clock.Clock
	logger     *zap.Logger
	partitions map[bookingDomain.State]partitionQuery
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	users userDomain.UserRepository,
	items itemDomain.ItemRepository,
	producer kafka.Publisher,
	clk clock.Clock,
	logger *zap.Logger,
) *BookingService {
	s := &BookingService{
		bookings: bookings,
		users:    users,
		items:    items,
		producer: producer,
		clock:    clk,
		logger:   logger,
	}
	s.partitions = map[bookingDomain.State]partitionQuery{
		bookingDomain.StateAll: func(ctx context.Context, subj bookingDomain.Subject, _ time.Time, p domain.Page) ([]*bookingDomain.Booking, error) {
			return bookings.FindAll(ctx, subj, p)
		},
		bookingDomain.StateCurrent:  bookings.FindCurrent,
		bookingDomain.StatePast:     bookings.FindPast,
		bookingDomain.StateFuture:   bookings.FindFuture,
		bookingDomain.StateWaiting:  byStatus(bookings, bookingDomain.StatusWaiting),
		bookingDomain.StateRejected: byStatus(bookings, bookingDomain.StatusRejected),
	}
	return s
}

func byStatus(repo bookingDomain.BookingRepository, status bookingDomain.BookingStatus) partitionQuery {
	return func(ctx context.Context, subj bookingDomain.Subject, _ time.Time, p domain.Page) ([]*bookingDomain.Booking, error) {
		return repo.FindByStatus(ctx, subj, status, p)
	}
}

// AddBooking creates a WAITING booking of someone else's available item.
func (s *BookingService) AddBooking(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	if err := bookingDomain.ValidateRange(req.Start, req.End); err != nil {
		return nil, err
	}

	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available() {
		return nil, domain.NewNotAllowedError(fmt.Sprintf("item %s is not available for booking", it.ID()))
	}
	if it.IsOwnedBy(bookerID) {
		return nil, domain.NewNotFoundMessage("cannot book own item")
	}

	bk, err := bookingDomain.NewBooking(req.Start, req.End, it, booker, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("item_id", it.ID().String()),
		zap.String("booker_id", bookerID.String()),
	)
	s.publishBookingEvent(ctx, events.BookingCreated, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// ApproveBooking records the item owner's decision on a booking.
func (s *BookingService) ApproveBooking(ctx context.Context, ownerID, bookingID uuid.UUID, approved bool) (*BookingDTO, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.OwnerID() != ownerID {
		return nil, domain.NewNotFoundMessage(fmt.Sprintf("user %s is not the owner of the item booked in %s", ownerID, bookingID))
	}

	if err := bk.Decide(approved, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.bookings.UpdateStatus(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Info("booking decided",
		zap.String("booking_id", bk.ID().String()),
		zap.String("status", bk.Status().String()),
	)

	eventType := events.BookingRejected
	if approved {
		eventType = events.BookingApproved
	}
	s.publishBookingEvent(ctx, eventType, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking returns a booking visible to its booker or its item's owner.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDTO, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	bk, err := s.bookings.FindByIDForParticipant(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookerBookings lists the bookings a user made.
func (s *BookingService) GetBookerBookings(ctx context.Context, bookerID uuid.UUID, state bookingDomain.State, from, size int) ([]BookingDTO, error) {
	return s.listBookings(ctx, bookingDomain.Booker(bookerID), state, from, size)
}

// GetOwnerBookings lists the bookings made on a user's items.
func (s *BookingService) GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, state bookingDomain.State, from, size int) ([]BookingDTO, error) {
	return s.listBookings(ctx, bookingDomain.Owner(ownerID), state, from, size)
}

// listBookings returns an empty list for a state without a registered query.
func (s *BookingService) listBookings(ctx context.Context, subject bookingDomain.Subject, state bookingDomain.State, from, size int) ([]BookingDTO, error) {
	if err := s.requireUser(ctx, subject.UserID); err != nil {
		return nil, err
	}

	query, ok := s.partitions[state]
	if !ok {
		s.logger.Debug("no query for booking state", zap.String("state", string(state)))
		return []BookingDTO{}, nil
	}

	bookings, err := query(ctx, subject, s.clock.Now(), domain.PageOf(from, size))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s bookings: %w", subject.Role, err)
	}
	return toBookingDTOs(bookings), nil
}

// --- Helpers ---

func (s *BookingService) requireUser(ctx context.Context, id uuid.UUID) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return domain.NewNotFoundError("User", id.String())
	}
	return nil
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, bk *bookingDomain.Booking) {
	evt := events.BookingEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		OwnerID:    bk.OwnerID(),
		Status:     bk.Status().String(),
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: s.clock.Now(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, eventType, bk.ID().String(), evt)
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(events.Source, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = key

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
