package memory

import (
	"context"
	"sort"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/comment"
	"github.com/google/uuid"
)

// CommentRepository is the in-memory implementation of comment.CommentRepository.
type CommentRepository struct {
	s *Store
}

var _ comment.CommentRepository = (*CommentRepository)(nil)

func (r *CommentRepository) Save(_ context.Context, c *comment.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.comments[c.ID()] = &commentRecord{
		id:        c.ID(),
		itemID:    c.ItemID(),
		authorID:  c.AuthorID(),
		text:      c.Text(),
		createdAt: c.CreatedAt(),
	}
	return nil
}

func (r *CommentRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*comment.Comment, error) {
	byItem, err := r.FindByItemIDs(ctx, []uuid.UUID{itemID})
	if err != nil {
		return nil, err
	}
	if cs, ok := byItem[itemID]; ok {
		return cs, nil
	}
	return []*comment.Comment{}, nil
}

func (r *CommentRepository) FindByItemIDs(_ context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*comment.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}

	out := make(map[uuid.UUID][]*comment.Comment)
	for _, rec := range r.s.comments {
		if wanted[rec.itemID] {
			out[rec.itemID] = append(out[rec.itemID], r.s.toComment(rec))
		}
	}
	for _, cs := range out {
		sort.Slice(cs, func(i, j int) bool { return cs[i].CreatedAt().Before(cs[j].CreatedAt()) })
	}
	return out, nil
}
