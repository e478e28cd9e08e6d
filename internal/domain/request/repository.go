package request

import (
	"context"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
)

// RequestRepository defines persistence operations for item requests.
// Both listings are ordered newest first.
type RequestRepository interface {
	Save(ctx context.Context, r *ItemRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*ItemRequest, error)
	FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)
	// FindOthers pages through requests made by anyone except userID.
	FindOthers(ctx context.Context, userID uuid.UUID, page domain.Page) ([]*ItemRequest, error)
}
