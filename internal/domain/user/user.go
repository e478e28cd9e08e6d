package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
)

// User is a registered member who can list items and book others' items.
type User struct {
	id        uuid.UUID
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a User with a validated name and email.
func NewUser(name, email string, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Update applies a partial update. Empty values leave fields unchanged.
func (u *User) Update(name, email string, now time.Time) error {
	if name = strings.TrimSpace(name); name != "" {
		u.name = name
	}
	if email != "" {
		normalized, err := normalizeEmail(email)
		if err != nil {
			return err
		}
		u.email = normalized
	}
	u.updatedAt = now.UTC()
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", domain.NewValidationError("user email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", domain.NewValidationError("invalid email: " + email)
	}
	return email, nil
}
