package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	// ExistsByEmail reports whether a user other than exceptID holds email.
	ExistsByEmail(ctx context.Context, email string, exceptID uuid.UUID) (bool, error)
	FindAll(ctx context.Context) ([]*User, error)
	Save(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	// Delete removes the user with their items, comments and requests. It
	// reports NotAllowed while the user is the booker of any booking or owns
	// an item that has one.
	Delete(ctx context.Context, id uuid.UUID) error
}
