package application

import (
	"context"
	"fmt"

	itemDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/item"
	requestDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/request"
	userDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/clock"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateItemRequestRequest is the request DTO for asking for an item.
type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestService implements item request use cases.
type RequestService struct {
	requests requestDomain.RequestRepository
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	clock    clock.Clock
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.RequestRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	clk clock.Clock,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		clock:    clk,
		logger:   logger,
	}
}

// AddRequest records a new item request on behalf of requesterID.
func (s *RequestService) AddRequest(ctx context.Context, requesterID uuid.UUID, req CreateItemRequestRequest) (*ItemRequestDTO, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	r, err := requestDomain.NewItemRequest(requesterID, req.Description, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.requests.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save item request: %w", err)
	}

	s.logger.Info("item request created",
		zap.String("request_id", r.ID().String()),
		zap.String("requester_id", requesterID.String()),
	)
	dto := toItemRequestDTO(r, nil)
	return &dto, nil
}

// GetOwnRequests lists the caller's requests, newest first.
func (s *RequestService) GetOwnRequests(ctx context.Context, requesterID uuid.UUID) ([]ItemRequestDTO, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.requests.FindByRequesterID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list item requests: %w", err)
	}
	return s.withAnswers(ctx, requests)
}

// GetOtherRequests pages through everyone else's requests, newest first.
// The caller is not required to be a registered user.
func (s *RequestService) GetOtherRequests(ctx context.Context, userID uuid.UUID, from, size int) ([]ItemRequestDTO, error) {
	requests, err := s.requests.FindOthers(ctx, userID, domain.PageOf(from, size))
	if err != nil {
		return nil, fmt.Errorf("failed to list item requests: %w", err)
	}
	return s.withAnswers(ctx, requests)
}

// GetRequest returns one request with its answers.
func (s *RequestService) GetRequest(ctx context.Context, userID, requestID uuid.UUID) (*ItemRequestDTO, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	out, err := s.withAnswers(ctx, []*requestDomain.ItemRequest{r})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// withAnswers attaches the answering items to every request in one lookup.
func (s *RequestService) withAnswers(ctx context.Context, requests []*requestDomain.ItemRequest) ([]ItemRequestDTO, error) {
	ids := make([]uuid.UUID, len(requests))
	for i, r := range requests {
		ids[i] = r.ID()
	}

	answers, err := s.items.FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load request answers: %w", err)
	}

	out := make([]ItemRequestDTO, len(requests))
	for i, r := range requests {
		out[i] = toItemRequestDTO(r, answers[r.ID()])
	}
	return out, nil
}

func (s *RequestService) requireUser(ctx context.Context, id uuid.UUID) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return domain.NewNotFoundError("User", id.String())
	}
	return nil
}
