package memory

import (
	"context"
	"sort"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
)

// UserRepository is the in-memory implementation of user.UserRepository.
type UserRepository struct {
	s *Store
}

var _ user.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id.String())
	}
	return r.s.toUser(rec), nil
}

func (r *UserRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.users[id]
	return ok, nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string, exceptID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.emailTaken(email, exceptID), nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*user.User, 0, len(r.s.users))
	for _, rec := range r.s.users {
		out = append(out, r.s.toUser(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out, nil
}

func (r *UserRepository) Save(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(u.Email(), u.ID()) {
		return domain.NewConflictError("email " + u.Email() + " is already registered")
	}
	r.s.users[u.ID()] = &userRecord{
		id:        u.ID(),
		name:      u.Name(),
		email:     u.Email(),
		createdAt: u.CreatedAt(),
		updatedAt: u.UpdatedAt(),
	}
	return nil
}

func (r *UserRepository) Update(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.users[u.ID()]
	if !ok {
		return domain.NewNotFoundError("User", u.ID().String())
	}
	if r.emailTaken(u.Email(), u.ID()) {
		return domain.NewConflictError("email " + u.Email() + " is already registered")
	}
	rec.name = u.Name()
	rec.email = u.Email()
	rec.updatedAt = u.UpdatedAt()
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return domain.NewNotFoundError("User", id.String())
	}
	if r.s.userBooked(id) {
		return domain.NewNotAllowedError("user has bookings and cannot be deleted")
	}
	for iid, rec := range r.s.items {
		if rec.ownerID == id {
			r.s.deleteItem(iid)
		}
	}
	for cid, rec := range r.s.comments {
		if rec.authorID == id {
			delete(r.s.comments, cid)
		}
	}
	for rid, rec := range r.s.requests {
		if rec.requesterID == id {
			r.s.deleteRequest(rid)
		}
	}
	delete(r.s.users, id)
	return nil
}

func (r *UserRepository) emailTaken(email string, exceptID uuid.UUID) bool {
	for _, rec := range r.s.users {
		if rec.email == email && rec.id != exceptID {
			return true
		}
	}
	return false
}
