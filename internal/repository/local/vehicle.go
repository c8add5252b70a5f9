package local

import (
	"context"
	"fmt"

	"carrental-portal/internal/domain"
	"carrental-portal/internal/repository"
	"carrental-portal/internal/storage"
)

var _ repository.VehicleRepository = (*vehicleRepository)(nil)

type vehicleRepository struct {
	c *collection[domain.Vehicle]
}

func newVehicleRepository(ctx context.Context, store *storage.Adapter) *vehicleRepository {
	return &vehicleRepository{
		c: newCollection(ctx, store, storage.KeyVehicles,
			func(v *domain.Vehicle) string { return v.ID }, cloneVehicle),
	}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	if !r.c.insert(ctx, *v) {
		return fmt.Errorf("%w: duplicate vehicle id %s", domain.ErrValidation, v.ID)
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	v, ok := r.c.get(id)
	if !ok {
		return nil, fmt.Errorf("vehicle %s: %w", id, domain.ErrNotFound)
	}
	return &v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	if !r.c.replace(ctx, *v) {
		return fmt.Errorf("vehicle %s: %w", v.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id string) error {
	r.c.remove(ctx, id)
	return nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	return r.c.list(nil), nil
}
