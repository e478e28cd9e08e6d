package application

import (
	"context"
	"fmt"
	"strings"

	bookingDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/booking"
	commentDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/comment"
	itemDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/item"
	requestDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/request"
	userDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/clock"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateItemRequest is the request DTO for listing an item.
type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"request_id"`
}

// UpdateItemRequest is the request DTO for a partial item update.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemService implements item catalog use cases.
type ItemService struct {
	items     itemDomain.ItemRepository
	users     userDomain.UserRepository
	comments  commentDomain.CommentRepository
	requests  requestDomain.RequestRepository
	projector *bookingDomain.AvailabilityProjector
	clock     clock.Clock
	logger    *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	comments commentDomain.CommentRepository,
	requests requestDomain.RequestRepository,
	projector *bookingDomain.AvailabilityProjector,
	clk clock.Clock,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:     items,
		users:     users,
		comments:  comments,
		requests:  requests,
		projector: projector,
		clock:     clk,
		logger:    logger,
	}
}

// CreateItem lists a new item for ownerID.
func (s *ItemService) CreateItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	available := req.Available != nil && *req.Available
	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, available, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		r, err := s.requests.FindByID(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		it.AnswerRequest(r.ID())
	}

	if err := s.items.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("item created",
		zap.String("item_id", it.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	dto := toItemDTO(it)
	return &dto, nil
}

// UpdateItem applies a partial update on behalf of the owner.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	it, err := s.ownedItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	it.Update(req.Name, req.Description, req.Available, s.clock.Now())
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	dto := toItemDTO(it)
	return &dto, nil
}

// DeleteItem removes an item on behalf of the owner. Items with bookings
// cannot be deleted.
func (s *ItemService) DeleteItem(ctx context.Context, ownerID, itemID uuid.UUID) error {
	if _, err := s.ownedItem(ctx, ownerID, itemID); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}
	s.logger.Info("item deleted", zap.String("item_id", itemID.String()))
	return nil
}

// GetItem returns an item with comments and, for its owner, last/next bookings.
func (s *ItemService) GetItem(ctx context.Context, viewerID, itemID uuid.UUID) (*ItemDTO, error) {
	if err := s.requireUser(ctx, viewerID); err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	ln, err := s.projector.Project(ctx, itemID, viewerID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to project bookings: %w", err)
	}
	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	dto := toAnnotatedItemDTO(it, ln, comments)
	return &dto, nil
}

// GetOwnerItems lists an owner's items, annotated in two batched lookups.
func (s *ItemService) GetOwnerItems(ctx context.Context, ownerID uuid.UUID, from, size int) ([]ItemDTO, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.FindByOwnerID(ctx, ownerID, domain.PageOf(from, size))
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID()
	}

	projections, err := s.projector.ProjectMany(ctx, ids, ownerID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to project bookings: %w", err)
	}
	comments, err := s.comments.FindByItemIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	out := make([]ItemDTO, len(items))
	for i, it := range items {
		out[i] = toAnnotatedItemDTO(it, projections[it.ID()], comments[it.ID()])
	}
	return out, nil
}

// SearchItems finds available items by text. Blank text matches nothing.
func (s *ItemService) SearchItems(ctx context.Context, text string, from, size int) ([]ItemDTO, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []ItemDTO{}, nil
	}

	items, err := s.items.Search(ctx, text, domain.PageOf(from, size))
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	return toItemDTOs(items), nil
}

// SetAvailability applies an availability change received from the catalog.
func (s *ItemService) SetAvailability(ctx context.Context, itemID uuid.UUID, available bool) error {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if it.Available() == available {
		return nil
	}

	it.SetAvailability(available, s.clock.Now())
	if err := s.items.Update(ctx, it); err != nil {
		return err
	}

	s.logger.Info("item availability changed",
		zap.String("item_id", itemID.String()),
		zap.Bool("available", available),
	)
	return nil
}

// --- Helpers ---

func (s *ItemService) ownedItem(ctx context.Context, ownerID, itemID uuid.UUID) (*itemDomain.Item, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, domain.NewNotFoundMessage(fmt.Sprintf("user %s does not own item %s", ownerID, itemID))
	}
	return it, nil
}

func (s *ItemService) requireUser(ctx context.Context, id uuid.UUID) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return domain.NewNotFoundError("User", id.String())
	}
	return nil
}
