package memory

import (
	"context"
	"sort"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/item"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
)

// ItemRepository is the in-memory implementation of item.ItemRepository.
type ItemRepository struct {
	s *Store
}

var _ item.ItemRepository = (*ItemRepository)(nil)

func (r *ItemRepository) FindByID(_ context.Context, id uuid.UUID) (*item.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Item", id.String())
	}
	return r.s.toItem(rec), nil
}

func (r *ItemRepository) FindByOwnerID(_ context.Context, ownerID uuid.UUID, page domain.Page) ([]*item.Item, error) {
	return r.collect(page, func(rec *itemRecord) bool { return rec.ownerID == ownerID }), nil
}

func (r *ItemRepository) Search(_ context.Context, text string, page domain.Page) ([]*item.Item, error) {
	if text == "" {
		return []*item.Item{}, nil
	}
	return r.collect(page, func(rec *itemRecord) bool {
		return rec.available && r.s.toItem(rec).Matches(text)
	}), nil
}

func (r *ItemRepository) Save(_ context.Context, i *item.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.items[i.ID()] = &itemRecord{
		id:          i.ID(),
		ownerID:     i.OwnerID(),
		name:        i.Name(),
		description: i.Description(),
		available:   i.Available(),
		requestID:   i.RequestID(),
		version:     i.Version(),
		createdAt:   i.CreatedAt(),
		updatedAt:   i.UpdatedAt(),
	}
	return nil
}

// Update applies the same optimistic version check as the gorm repository.
func (r *ItemRepository) Update(_ context.Context, i *item.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.items[i.ID()]
	if !ok || rec.version != i.Version()-1 {
		return domain.NewConflictError("item was modified by another transaction")
	}
	rec.name = i.Name()
	rec.description = i.Description()
	rec.available = i.Available()
	rec.version = i.Version()
	rec.updatedAt = i.UpdatedAt()
	return nil
}

func (r *ItemRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.items[id]; !ok {
		return domain.NewNotFoundError("Item", id.String())
	}
	if r.s.itemBooked(id) {
		return domain.NewNotAllowedError("item has bookings and cannot be deleted")
	}
	r.s.deleteItem(id)
	return nil
}

func (r *ItemRepository) FindByRequestIDs(_ context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]*item.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wanted := make(map[uuid.UUID]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}

	out := make(map[uuid.UUID][]*item.Item)
	for _, rec := range r.s.items {
		if rec.requestID != nil && wanted[*rec.requestID] {
			out[*rec.requestID] = append(out[*rec.requestID], r.s.toItem(rec))
		}
	}
	for _, items := range out {
		sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt().Before(items[j].CreatedAt()) })
	}
	return out, nil
}

func (r *ItemRepository) collect(page domain.Page, keep func(*itemRecord) bool) []*item.Item {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*item.Item
	for _, rec := range r.s.items {
		if keep(rec) {
			matched = append(matched, r.s.toItem(rec))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt().Equal(matched[j].CreatedAt()) {
			return matched[i].ID().String() < matched[j].ID().String()
		}
		return matched[i].CreatedAt().Before(matched[j].CreatedAt())
	})
	return domain.Apply(matched, page)
}
