package application

import (
	"context"
	"fmt"

	bookingDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/booking"
	commentDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/comment"
	itemDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/item"
	userDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/clock"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddCommentRequest is the request DTO for commenting on an item.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentService lets past borrowers leave feedback on items.
type CommentService struct {
	comments commentDomain.CommentRepository
	bookings bookingDomain.BookingRepository
	users    userDomain.UserRepository
	items    itemDomain.ItemRepository
	clock    clock.Clock
	logger   *zap.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments commentDomain.CommentRepository,
	bookings bookingDomain.BookingRepository,
	users userDomain.UserRepository,
	items itemDomain.ItemRepository,
	clk clock.Clock,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		bookings: bookings,
		users:    users,
		items:    items,
		clock:    clk,
		logger:   logger,
	}
}

// AddComment stores a comment from a user who finished an approved booking
// of the item.
func (s *CommentService) AddComment(ctx context.Context, authorID, itemID uuid.UUID, req AddCommentRequest) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	completed, err := s.bookings.ExistsCompleted(ctx, itemID, authorID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to check completed bookings: %w", err)
	}
	if !completed {
		return nil, domain.NewNotAllowedError(fmt.Sprintf("user %s has no completed booking of item %s", authorID, itemID))
	}

	c, err := commentDomain.NewComment(itemID, authorID, author.Name(), req.Text, now)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	s.logger.Info("comment added",
		zap.String("comment_id", c.ID().String()),
		zap.String("item_id", itemID.String()),
	)
	dto := toCommentDTO(c)
	return &dto, nil
}
