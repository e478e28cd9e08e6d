package memory

import (
	"context"
	"sort"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/request"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
)

// RequestRepository is the in-memory implementation of request.RequestRepository.
type RequestRepository struct {
	s *Store
}

var _ request.RequestRepository = (*RequestRepository)(nil)

func (r *RequestRepository) Save(_ context.Context, req *request.ItemRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.requests[req.ID()] = &requestRecord{
		id:          req.ID(),
		requesterID: req.RequesterID(),
		description: req.Description(),
		createdAt:   req.CreatedAt(),
	}
	return nil
}

func (r *RequestRepository) FindByID(_ context.Context, id uuid.UUID) (*request.ItemRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.requests[id]
	if !ok {
		return nil, domain.NewNotFoundError("ItemRequest", id.String())
	}
	return r.s.toRequest(rec), nil
}

func (r *RequestRepository) FindByRequesterID(_ context.Context, requesterID uuid.UUID) ([]*request.ItemRequest, error) {
	return r.newestFirst(func(rec *requestRecord) bool { return rec.requesterID == requesterID }), nil
}

func (r *RequestRepository) FindOthers(_ context.Context, userID uuid.UUID, page domain.Page) ([]*request.ItemRequest, error) {
	return domain.Apply(r.newestFirst(func(rec *requestRecord) bool { return rec.requesterID != userID }), page), nil
}

func (r *RequestRepository) newestFirst(keep func(*requestRecord) bool) []*request.ItemRequest {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []*request.ItemRequest{}
	for _, rec := range r.s.requests {
		if keep(rec) {
			out = append(out, r.s.toRequest(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].ID().String() < out[j].ID().String()
		}
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out
}
