package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/booking"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const joinItems = "JOIN items ON items.id = bookings.item_id"

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking. The item and booker rows must already exist.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.withRefs(ctx).Where("bookings.id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByIDForParticipant retrieves a booking visible to userID.
func (r *GormBookingRepository) FindByIDForParticipant(ctx context.Context, id, userID uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.withRefs(ctx).
		Joins(joinItems).
		Where("bookings.id = ?", id).
		Where("(bookings.booker_id = ? OR items.owner_id = ?)", userID, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking for participant: %w", err)
	}
	return toDomainBooking(&model)
}

func (r *GormBookingRepository) FindAll(ctx context.Context, subject bookingDomain.Subject, page domain.Page) ([]*bookingDomain.Booking, error) {
	return r.list(r.forSubject(ctx, subject), page)
}

func (r *GormBookingRepository) FindCurrent(ctx context.Context, subject bookingDomain.Subject, now time.Time, page domain.Page) ([]*bookingDomain.Booking, error) {
	return r.list(r.forSubject(ctx, subject).
		Where("bookings.start_date <= ? AND bookings.end_date >= ?", now, now), page)
}

func (r *GormBookingRepository) FindPast(ctx context.Context, subject bookingDomain.Subject, now time.Time, page domain.Page) ([]*bookingDomain.Booking, error) {
	return r.list(r.forSubject(ctx, subject).Where("bookings.end_date < ?", now), page)
}

func (r *GormBookingRepository) FindFuture(ctx context.Context, subject bookingDomain.Subject, now time.Time, page domain.Page) ([]*bookingDomain.Booking, error) {
	return r.list(r.forSubject(ctx, subject).Where("bookings.start_date > ?", now), page)
}

func (r *GormBookingRepository) FindByStatus(ctx context.Context, subject bookingDomain.Subject, status bookingDomain.BookingStatus, page domain.Page) ([]*bookingDomain.Booking, error) {
	return r.list(r.forSubject(ctx, subject).Where("bookings.status = ?", status.String()), page)
}

// UpdateStatus is a compare-and-swap: the row is only written while it is
// not APPROVED.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, bk *bookingDomain.Booking) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status <> ?", bk.ID(), bookingDomain.StatusApproved.String()).
		Updates(map[string]interface{}{
			"status":     bk.Status().String(),
			"version":    gorm.Expr("version + 1"),
			"updated_at": bk.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("id = ?", bk.ID()).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check booking: %w", err)
	}
	if count == 0 {
		return domain.NewNotFoundError("Booking", bk.ID().String())
	}
	return domain.NewNotAllowedError("cannot change status of an approved booking")
}

// ExistsCompleted reports whether bookerID has a finished approved booking of itemID.
func (r *GormBookingRepository) ExistsCompleted(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_date < ?",
			itemID, bookerID, bookingDomain.StatusApproved.String(), now).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check completed bookings: %w", err)
	}
	return count > 0, nil
}

func (r *GormBookingRepository) FindLatestApprovedBefore(ctx context.Context, itemID, ownerID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	return r.first(r.approvedOfOwnedItem(ctx, itemID, ownerID).
		Where("bookings.start_date < ?", now).
		Order("bookings.start_date DESC"))
}

func (r *GormBookingRepository) FindEarliestApprovedAfter(ctx context.Context, itemID, ownerID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	return r.first(r.approvedOfOwnedItem(ctx, itemID, ownerID).
		Where("bookings.start_date > ?", now).
		Order("bookings.start_date ASC"))
}

// FindLastAndNext resolves the projection ids with one DISTINCT ON query per
// side, then loads the matching bookings in a single round trip.
func (r *GormBookingRepository) FindLastAndNext(ctx context.Context, itemIDs []uuid.UUID, ownerID uuid.UUID, now time.Time) (map[uuid.UUID]bookingDomain.LastNext, error) {
	out := make(map[uuid.UUID]bookingDomain.LastNext)
	if len(itemIDs) == 0 {
		return out, nil
	}

	var ids []uuid.UUID
	for _, side := range []projectionSide{sideLast, sideNext} {
		query, err := lastNextQuery(side, itemIDs, ownerID, now)
		if err != nil {
			return nil, err
		}
		var rows []struct{ ID uuid.UUID }
		if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to project %s bookings: %w", side, err)
		}
		for _, row := range rows {
			ids = append(ids, row.ID)
		}
	}
	if len(ids) == 0 {
		return out, nil
	}

	var models []BookingModel
	if err := r.withRefs(ctx).Where("bookings.id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load projected bookings: %w", err)
	}

	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		ln := out[models[i].ItemID]
		if bk.Start().Before(now) {
			ln.Last = bk
		} else {
			ln.Next = bk
		}
		out[models[i].ItemID] = ln
	}
	return out, nil
}

// --- Helpers ---

func (r *GormBookingRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&BookingModel{}).Preload("Item").Preload("Booker")
}

func (r *GormBookingRepository) forSubject(ctx context.Context, subject bookingDomain.Subject) *gorm.DB {
	q := r.withRefs(ctx)
	if subject.Role == bookingDomain.RoleOwner {
		return q.Joins(joinItems).Where("items.owner_id = ?", subject.UserID)
	}
	return q.Where("bookings.booker_id = ?", subject.UserID)
}

func (r *GormBookingRepository) approvedOfOwnedItem(ctx context.Context, itemID, ownerID uuid.UUID) *gorm.DB {
	return r.withRefs(ctx).
		Joins(joinItems).
		Where("bookings.item_id = ? AND items.owner_id = ? AND bookings.status = ?",
			itemID, ownerID, bookingDomain.StatusApproved.String())
}

func (r *GormBookingRepository) list(q *gorm.DB, page domain.Page) ([]*bookingDomain.Booking, error) {
	if page.Limit <= 0 {
		return []*bookingDomain.Booking{}, nil
	}

	var models []BookingModel
	if err := q.Order("bookings.start_date DESC, bookings.id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

func (r *GormBookingRepository) first(q *gorm.DB) (*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := q.Limit(1).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	return toDomainBooking(&models[0])
}

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		StartDate: bk.Start(),
		EndDate:   bk.End(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		Status:    bk.Status().String(),
		Version:   bk.Version(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", m.ID, err)
	}
	return bookingDomain.Reconstruct(
		m.ID,
		m.StartDate.UTC(), m.EndDate.UTC(),
		toItemDomain(&m.Item),
		toUserDomain(&m.Booker),
		status,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}
