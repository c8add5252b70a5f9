package local

import (
	"context"
	"fmt"

	"carrental-portal/internal/domain"
	"carrental-portal/internal/repository"
	"carrental-portal/internal/storage"
)

var _ repository.RentalRequestRepository = (*rentalRequestRepository)(nil)

type rentalRequestRepository struct {
	c *collection[domain.RentalRequest]
}

func newRentalRequestRepository(ctx context.Context, store *storage.Adapter) *rentalRequestRepository {
	return &rentalRequestRepository{
		c: newCollection(ctx, store, storage.KeyRentalRequests,
			func(r *domain.RentalRequest) string { return r.ID }, cloneRental),
	}
}

func (r *rentalRequestRepository) Create(ctx context.Context, req *domain.RentalRequest) error {
	if !r.c.insert(ctx, *req) {
		return fmt.Errorf("%w: duplicate rental request id %s", domain.ErrValidation, req.ID)
	}
	return nil
}

func (r *rentalRequestRepository) GetByID(ctx context.Context, id string) (*domain.RentalRequest, error) {
	req, ok := r.c.get(id)
	if !ok {
		return nil, fmt.Errorf("rental request %s: %w", id, domain.ErrNotFound)
	}
	return &req, nil
}

func (r *rentalRequestRepository) Update(ctx context.Context, req *domain.RentalRequest) error {
	if !r.c.replace(ctx, *req) {
		return fmt.Errorf("rental request %s: %w", req.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *rentalRequestRepository) List(ctx context.Context, filter domain.StatusFilter) ([]domain.RentalRequest, error) {
	return r.c.list(func(req *domain.RentalRequest) bool {
		return filter.Matches(req.Status)
	}), nil
}
