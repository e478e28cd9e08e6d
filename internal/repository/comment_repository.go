package repository

import (
	"context"
	"fmt"

	commentDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/comment"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCommentRepository implements CommentRepository using GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save persists a new comment.
func (r *GormCommentRepository) Save(ctx context.Context, c *commentDomain.Comment) error {
	model := CommentModel{
		ID:        c.ID(),
		ItemID:    c.ItemID(),
		AuthorID:  c.AuthorID(),
		Text:      c.Text(),
		CreatedAt: c.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

// FindByItemID returns an item's comments, oldest first.
func (r *GormCommentRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*commentDomain.Comment, error) {
	byItem, err := r.FindByItemIDs(ctx, []uuid.UUID{itemID})
	if err != nil {
		return nil, err
	}
	if cs, ok := byItem[itemID]; ok {
		return cs, nil
	}
	return []*commentDomain.Comment{}, nil
}

// FindByItemIDs loads comments of many items with one query.
func (r *GormCommentRepository) FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*commentDomain.Comment, error) {
	out := make(map[uuid.UUID][]*commentDomain.Comment)
	if len(itemIDs) == 0 {
		return out, nil
	}

	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("item_id IN ?", itemIDs).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	for _, m := range models {
		out[m.ItemID] = append(out[m.ItemID], commentDomain.Reconstruct(
			m.ID, m.ItemID, m.AuthorID, m.Author.Name, m.Text, m.CreatedAt,
		))
	}
	return out, nil
}
