package local

import (
	"context"

	"carrental-portal/internal/repository"
	"carrental-portal/internal/storage"
)

var _ repository.Reloader = (*Store)(nil)

// Store is one view's set of repositories over the shared adapter. Several
// Stores over the same backend behave like several browser tabs: each keeps
// its own cached copy and only sees the others' writes after Reload.
type Store struct {
	adapter *storage.Adapter

	repository.VehicleRepository
	repository.RentalRequestRepository
	repository.ListingRequestRepository
	repository.SessionRepository

	vehicles *vehicleRepository
	rentals  *rentalRequestRepository
	listings *listingRequestRepository
}

// NewStore loads every collection from the adapter
func NewStore(ctx context.Context, adapter *storage.Adapter) *Store {
	vehicles := newVehicleRepository(ctx, adapter)
	rentals := newRentalRequestRepository(ctx, adapter)
	listings := newListingRequestRepository(ctx, adapter)

	return &Store{
		adapter:                  adapter,
		VehicleRepository:        vehicles,
		RentalRequestRepository:  rentals,
		ListingRequestRepository: listings,
		SessionRepository:        &sessionRepository{store: adapter},
		vehicles:                 vehicles,
		rentals:                  rentals,
		listings:                 listings,
	}
}

// Reload re-reads every collection and returns the keys whose stored value
// changed since this view last saw it.
func (s *Store) Reload(ctx context.Context) []string {
	var changed []string
	if s.vehicles.c.reload(ctx) {
		changed = append(changed, storage.KeyVehicles)
	}
	if s.rentals.c.reload(ctx) {
		changed = append(changed, storage.KeyRentalRequests)
	}
	if s.listings.c.reload(ctx) {
		changed = append(changed, storage.KeyCarListingRequests)
	}
	return changed
}
