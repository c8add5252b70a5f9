package service

import (
	"context"
	"errors"

	"carrental-portal/internal/domain"
	"carrental-portal/internal/events"
	"carrental-portal/internal/logger"
	"carrental-portal/internal/repository"
	"carrental-portal/internal/storage"
)

type inventoryService struct {
	vehicleRepo repository.VehicleRepository
	hub         *events.Hub
	deps
}

func NewInventoryService(vehicleRepo repository.VehicleRepository, hub *events.Hub, opts ...Option) InventoryService {
	return &inventoryService{
		vehicleRepo: vehicleRepo,
		hub:         hub,
		deps:        newDeps(opts),
	}
}

func (s *inventoryService) AddVehicle(ctx context.Context, in domain.VehicleInput) (*domain.Vehicle, error) {
	logger.EnterMethod("inventoryService.AddVehicle", "make", in.Make, "model", in.Model)

	v, err := domain.NewVehicle(s.newID(), in, s.now())
	if err != nil {
		logger.ExitMethodWithError("inventoryService.AddVehicle", err)
		return nil, err
	}
	if err := s.vehicleRepo.Create(ctx, &v); err != nil {
		logger.ExitMethodWithError("inventoryService.AddVehicle", err)
		return nil, err
	}

	s.publish(events.VehicleAdded, v.ID, v)
	logger.ExitMethod("inventoryService.AddVehicle", "vehicleID", v.ID)
	return &v, nil
}

func (s *inventoryService) UpdateVehicle(ctx context.Context, id string, patch domain.VehiclePatch) (*domain.Vehicle, error) {
	logger.EnterMethod("inventoryService.UpdateVehicle", "vehicleID", id)

	current, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("inventoryService.UpdateVehicle", err, "vehicleID", id)
		return nil, err
	}
	updated, err := patch.Apply(*current)
	if err != nil {
		logger.ExitMethodWithError("inventoryService.UpdateVehicle", err, "vehicleID", id)
		return nil, err
	}
	if err := s.vehicleRepo.Update(ctx, &updated); err != nil {
		logger.ExitMethodWithError("inventoryService.UpdateVehicle", err, "vehicleID", id)
		return nil, err
	}

	s.publish(events.VehicleUpdated, id, updated)
	logger.ExitMethod("inventoryService.UpdateVehicle", "vehicleID", id)
	return &updated, nil
}

// DeleteVehicle removes the vehicle. Rental requests keep their snapshot of it.
func (s *inventoryService) DeleteVehicle(ctx context.Context, id string) error {
	logger.EnterMethod("inventoryService.DeleteVehicle", "vehicleID", id)

	_, err := s.vehicleRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		logger.ExitMethod("inventoryService.DeleteVehicle", "vehicleID", id, "existed", false)
		return nil
	}
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		logger.ExitMethodWithError("inventoryService.DeleteVehicle", err, "vehicleID", id)
		return err
	}

	s.publish(events.VehicleDeleted, id, nil)
	logger.ExitMethod("inventoryService.DeleteVehicle", "vehicleID", id, "existed", true)
	return nil
}

func (s *inventoryService) ToggleAvailability(ctx context.Context, id string) (*domain.Vehicle, error) {
	logger.EnterMethod("inventoryService.ToggleAvailability", "vehicleID", id)

	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("inventoryService.ToggleAvailability", err, "vehicleID", id)
		return nil, err
	}
	v.Available = !v.Available
	if err := s.vehicleRepo.Update(ctx, v); err != nil {
		logger.ExitMethodWithError("inventoryService.ToggleAvailability", err, "vehicleID", id)
		return nil, err
	}

	s.publish(events.VehicleUpdated, id, *v)
	logger.ExitMethod("inventoryService.ToggleAvailability", "vehicleID", id, "available", v.Available)
	return v, nil
}

func (s *inventoryService) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *inventoryService) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicleRepo.List(ctx)
}

// ListAvailable returns the vehicles currently offered to renters
func (s *inventoryService) ListAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	all, err := s.vehicleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	available := make([]domain.Vehicle, 0, len(all))
	for _, v := range all {
		if v.Available {
			available = append(available, v)
		}
	}
	return available, nil
}

func (s *inventoryService) publish(kind events.Kind, id string, payload any) {
	s.hub.Publish(events.Event{
		Kind:       kind,
		Collection: storage.KeyVehicles,
		ID:         id,
		Payload:    payload,
		At:         s.now(),
	})
}
