package repository

import (
	"context"

	"carrental-portal/internal/domain"
)

// VehicleRepository owns the fleet. Delete of a missing id is a no-op.
type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Vehicle, error)
}

type RentalRequestRepository interface {
	Create(ctx context.Context, req *domain.RentalRequest) error
	GetByID(ctx context.Context, id string) (*domain.RentalRequest, error)
	Update(ctx context.Context, req *domain.RentalRequest) error
	List(ctx context.Context, filter domain.StatusFilter) ([]domain.RentalRequest, error)
}

type ListingRequestRepository interface {
	Create(ctx context.Context, req *domain.CarListingRequest) error
	GetByID(ctx context.Context, id string) (*domain.CarListingRequest, error)
	Update(ctx context.Context, req *domain.CarListingRequest) error
	List(ctx context.Context, filter domain.StatusFilter) ([]domain.CarListingRequest, error)
}

type SessionRepository interface {
	Get(ctx context.Context) (*domain.CurrentUser, error)
	Save(ctx context.Context, user *domain.CurrentUser) error
	Clear(ctx context.Context) error
}

// Reloader re-reads shared state and reports which collections changed
type Reloader interface {
	Reload(ctx context.Context) []string
}
