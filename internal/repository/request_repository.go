package repository

import (
	"context"
	"errors"
	"fmt"

	requestDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/request"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRequestRepository implements RequestRepository using GORM.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

func (r *GormRequestRepository) Save(ctx context.Context, req *requestDomain.ItemRequest) error {
	model := RequestModel{
		ID:          req.ID(),
		RequesterID: req.RequesterID(),
		Description: req.Description(),
		CreatedAt:   req.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save item request: %w", err)
	}
	return nil
}

func (r *GormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*requestDomain.ItemRequest, error) {
	var model RequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("ItemRequest", id.String())
		}
		return nil, fmt.Errorf("failed to find item request: %w", err)
	}
	return toRequestDomain(&model), nil
}

func (r *GormRequestRepository) FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*requestDomain.ItemRequest, error) {
	return r.find(r.db.WithContext(ctx).Where("requester_id = ?", requesterID))
}

func (r *GormRequestRepository) FindOthers(ctx context.Context, userID uuid.UUID, page domain.Page) ([]*requestDomain.ItemRequest, error) {
	if page.Limit <= 0 {
		return []*requestDomain.ItemRequest{}, nil
	}
	return r.find(r.db.WithContext(ctx).
		Where("requester_id <> ?", userID).
		Offset(page.Offset).
		Limit(page.Limit))
}

func (r *GormRequestRepository) find(q *gorm.DB) ([]*requestDomain.ItemRequest, error) {
	var models []RequestModel
	if err := q.Order("created_at DESC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list item requests: %w", err)
	}
	out := make([]*requestDomain.ItemRequest, len(models))
	for i := range models {
		out[i] = toRequestDomain(&models[i])
	}
	return out, nil
}

func toRequestDomain(m *RequestModel) *requestDomain.ItemRequest {
	return requestDomain.Reconstruct(m.ID, m.RequesterID, m.Description, m.CreatedAt.UTC())
}
