package comment

import (
	"context"

	"github.com/google/uuid"
)

// CommentRepository defines persistence operations for item comments.
type CommentRepository interface {
	Save(ctx context.Context, c *Comment) error
	FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*Comment, error)
	// FindByItemIDs loads comments for several items in one round trip,
	// keyed by item id. Items without comments are absent from the map.
	FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*Comment, error)
}
