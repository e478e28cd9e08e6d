package comment

import (
	"strings"
	"time"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
)

// Comment is feedback left on an item by someone who has borrowed it.
type Comment struct {
	id         uuid.UUID
	itemID     uuid.UUID
	authorID   uuid.UUID
	authorName string
	text       string
	createdAt  time.Time
}

// NewComment creates a comment with non-blank text.
func NewComment(itemID, authorID uuid.UUID, authorName, text string, createdAt time.Time) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("comment text is required")
	}
	return &Comment{
		id:         uuid.New(),
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		createdAt:  createdAt,
	}, nil
}

// Reconstruct rebuilds a Comment from persistence.
func Reconstruct(id, itemID, authorID uuid.UUID, authorName, text string, createdAt time.Time) *Comment {
	return &Comment{
		id:         id,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		createdAt:  createdAt,
	}
}

// Getters.
func (c *Comment) ID() uuid.UUID        { return c.id }
func (c *Comment) ItemID() uuid.UUID    { return c.itemID }
func (c *Comment) AuthorID() uuid.UUID  { return c.authorID }
func (c *Comment) AuthorName() string   { return c.authorName }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
