package item

import (
	"context"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
)

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	// FindByOwnerID returns the owner's items ordered by creation time.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page domain.Page) ([]*Item, error)
	// Search returns available items whose name or description contains
	// text, ignoring case.
	Search(ctx context.Context, text string, page domain.Page) ([]*Item, error)
	// FindByRequestIDs loads the items answering each request, keyed by
	// request id. Requests without answers are absent from the map.
	FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]*Item, error)
	Save(ctx context.Context, i *Item) error
	Update(ctx context.Context, i *Item) error
	// Delete removes the item and its comments. It reports NotAllowed while
	// any booking references the item.
	Delete(ctx context.Context, id uuid.UUID) error
}
