package item

import (
	"strings"
	"time"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
)

// Item is a thing a user offers for others to borrow.
type Item struct {
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

// NewItem creates a new Item with validated fields.
func NewItem(ownerID uuid.UUID, name, description string, available bool, now time.Time) (*Item, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("item name is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, domain.NewValidationError("item description is required")
	}

	now = now.UTC()
	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name, description string,
	available bool,
	requestID *uuid.UUID,
	version int64,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (i *Item) ID() uuid.UUID         { return i.id }
func (i *Item) OwnerID() uuid.UUID    { return i.ownerID }
func (i *Item) Name() string          { return i.name }
func (i *Item) Description() string   { return i.description }
func (i *Item) Available() bool       { return i.available }
func (i *Item) RequestID() *uuid.UUID { return i.requestID }
func (i *Item) Version() int64        { return i.version }
func (i *Item) CreatedAt() time.Time  { return i.createdAt }
func (i *Item) UpdatedAt() time.Time  { return i.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the item belongs to the given user.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

// AnswerRequest links the item to the request it was listed for.
func (i *Item) AnswerRequest(requestID uuid.UUID) {
	i.requestID = &requestID
}

// Update applies a partial update. Nil fields are left unchanged.
func (i *Item) Update(name, description *string, available *bool, now time.Time) {
	if name != nil && strings.TrimSpace(*name) != "" {
		i.name = strings.TrimSpace(*name)
	}
	if description != nil && strings.TrimSpace(*description) != "" {
		i.description = strings.TrimSpace(*description)
	}
	if available != nil {
		i.available = *available
	}
	i.version++
	i.updatedAt = now.UTC()
}

// SetAvailability flips the bookable flag.
func (i *Item) SetAvailability(available bool, now time.Time) {
	if i.available == available {
		return
	}
	i.available = available
	i.version++
	i.updatedAt = now.UTC()
}

// Matches reports whether text occurs, case-insensitively, in the name or
// description.
func (i *Item) Matches(text string) bool {
	needle := strings.ToLower(text)
	return strings.Contains(strings.ToLower(i.name), needle) ||
		strings.Contains(strings.ToLower(i.description), needle)
}
