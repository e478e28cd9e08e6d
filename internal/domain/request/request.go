package request

import (
	"strings"
	"time"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
)

// ItemRequest is a user's public ask for an item nobody has listed yet.
// Other users answer it by listing an item that references the request.
type ItemRequest struct {
	id          uuid.UUID
	requesterID uuid.UUID
	description string
	createdAt   time.Time
}

// NewItemRequest creates a request with a non-blank description.
func NewItemRequest(requesterID uuid.UUID, description string, now time.Time) (*ItemRequest, error) {
	if requesterID == uuid.Nil {
		return nil, domain.NewValidationError("requester ID is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, domain.NewValidationError("request description is required")
	}
	return &ItemRequest{
		id:          uuid.New(),
		requesterID: requesterID,
		description: description,
		createdAt:   now.UTC(),
	}, nil
}

// Reconstruct rebuilds an ItemRequest from persistence.
func Reconstruct(id, requesterID uuid.UUID, description string, createdAt time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		requesterID: requesterID,
		description: description,
		createdAt:   createdAt,
	}
}

func (r *ItemRequest) ID() uuid.UUID          { return r.id }
func (r *ItemRequest) RequesterID() uuid.UUID { return r.requesterID }
func (r *ItemRequest) Description() string    { return r.description }
func (r *ItemRequest) CreatedAt() time.Time   { return r.createdAt }
