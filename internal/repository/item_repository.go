package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	itemDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/item"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GormItemRepository implements ItemRepository using GORM.
type GormItemRepository struct {
	db *gorm.DB
}

func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Item", id.String())
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return toItemDomain(&model), nil
}

func (r *GormItemRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page domain.Page) ([]*itemDomain.Item, error) {
	return r.find(r.db.WithContext(ctx).Where("owner_id = ?", ownerID), page)
}

func (r *GormItemRepository) Search(ctx context.Context, text string, page domain.Page) ([]*itemDomain.Item, error) {
	if text == "" {
		return []*itemDomain.Item{}, nil
	}
	pattern := "%" + likeEscaper.Replace(text) + "%"
	return r.find(r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Where("(name ILIKE ? OR description ILIKE ?)", pattern, pattern), page)
}

func (r *GormItemRepository) Save(ctx context.Context, it *itemDomain.Item) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(toItemModel(it)).Error; err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	return nil
}

// Update persists changes with optimistic locking on version.
func (r *GormItemRepository) Update(ctx context.Context, it *itemDomain.Item) error {
	expectedVersion := it.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("id = ? AND version = ?", it.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"name":         it.Name(),
			"description":  it.Description(),
			"is_available": it.Available(),
			"version":      it.Version(),
			"updated_at":   it.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("item was modified by another transaction")
	}
	return nil
}

// Delete removes the item; comments go with it through the foreign key.
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ItemModel{})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return domain.NewNotAllowedError("item has bookings and cannot be deleted")
		}
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Item", id.String())
	}
	return nil
}

// FindByRequestIDs loads the answers to many requests with one query.
func (r *GormItemRepository) FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]*itemDomain.Item, error) {
	out := make(map[uuid.UUID][]*itemDomain.Item)
	if len(requestIDs) == 0 {
		return out, nil
	}

	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("request_id IN ?", requestIDs).
		Order("created_at ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list items by request: %w", err)
	}
	for i := range models {
		reqID := *models[i].RequestID
		out[reqID] = append(out[reqID], toItemDomain(&models[i]))
	}
	return out, nil
}

func (r *GormItemRepository) find(q *gorm.DB, page domain.Page) ([]*itemDomain.Item, error) {
	if page.Limit <= 0 {
		return []*itemDomain.Item{}, nil
	}

	var models []ItemModel
	if err := q.Order("created_at ASC, id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*itemDomain.Item, len(models))
	for i := range models {
		items[i] = toItemDomain(&models[i])
	}
	return items, nil
}

func toItemModel(it *itemDomain.Item) *ItemModel {
	return &ItemModel{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
		Version:     it.Version(),
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}

func toItemDomain(m *ItemModel) *itemDomain.Item {
	return itemDomain.Reconstruct(
		m.ID, m.OwnerID,
		m.Name, m.Description,
		m.Available,
		m.RequestID,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}
