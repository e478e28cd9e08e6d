package application

import (
	"context"
	"fmt"

	userDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/clock"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateUserRequest is the request DTO for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateUserRequest is the request DTO for a partial user update.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UserService implements user management use cases.
type UserService struct {
	repo   userDomain.UserRepository
	clock  clock.Clock
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo userDomain.UserRepository, clk clock.Clock, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, clock: clk, logger: logger}
}

// CreateUser registers a user with a unique email.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	u, err := userDomain.NewUser(req.Name, req.Email, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, u.Email(), u.ID()); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", u.ID().String()))
	dto := toUserDTO(u)
	return &dto, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// ListUsers returns every user.
func (s *UserService) ListUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = toUserDTO(u)
	}
	return out, nil
}

// UpdateUser applies a partial update.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.Update(req.Name, req.Email, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, u.Email(), u.ID()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := toUserDTO(u)
	return &dto, nil
}

// DeleteUser removes a user. It is refused while the user takes part in any
// booking, as booker or as owner of the booked item.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	taken, err := s.repo.ExistsByEmail(ctx, email, self)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return domain.NewConflictError(fmt.Sprintf("email %s is already registered", email))
	}
	return nil
}
