package local

import (
	"context"
	"fmt"

	"carrental-portal/internal/domain"
	"carrental-portal/internal/repository"
	"carrental-portal/internal/storage"
)

var _ repository.ListingRequestRepository = (*listingRequestRepository)(nil)

type listingRequestRepository struct {
	c *collection[domain.CarListingRequest]
}

func newListingRequestRepository(ctx context.Context, store *storage.Adapter) *listingRequestRepository {
	return &listingRequestRepository{
		c: newCollection(ctx, store, storage.KeyCarListingRequests,
			func(r *domain.CarListingRequest) string { return r.ID }, cloneListing),
	}
}

func (r *listingRequestRepository) Create(ctx context.Context, req *domain.CarListingRequest) error {
	if !r.c.insert(ctx, *req) {
		return fmt.Errorf("%w: duplicate listing request id %s", domain.ErrValidation, req.ID)
	}
	return nil
}

func (r *listingRequestRepository) GetByID(ctx context.Context, id string) (*domain.CarListingRequest, error) {
	req, ok := r.c.get(id)
	if !ok {
		return nil, fmt.Errorf("listing request %s: %w", id, domain.ErrNotFound)
	}
	return &req, nil
}

func (r *listingRequestRepository) Update(ctx context.Context, req *domain.CarListingRequest) error {
	if !r.c.replace(ctx, *req) {
		return fmt.Errorf("listing request %s: %w", req.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *listingRequestRepository) List(ctx context.Context, filter domain.StatusFilter) ([]domain.CarListingRequest, error) {
	return r.c.list(func(req *domain.CarListingRequest) bool {
		return filter.Matches(req.Status)
	}), nil
}
