package service

import (
	"context"
	"errors"

	"carrental-portal/internal/domain"
	"carrental-portal/internal/logger"
	"carrental-portal/internal/repository"
)

// ApprovalWorkflow turns an approved listing request into a fleet vehicle.
// It creates at most one vehicle per request.
type ApprovalWorkflow struct {
	vehicleRepo  repository.VehicleRepository
	defaultImage string
	deps
}

func NewApprovalWorkflow(vehicleRepo repository.VehicleRepository, defaultImage string, opts ...Option) *ApprovalWorkflow {
	return &ApprovalWorkflow{
		vehicleRepo:  vehicleRepo,
		defaultImage: defaultImage,
		deps:         newDeps(opts),
	}
}

// Materialize returns the vehicle linked to req, creating it when none exists.
// created is false when an earlier call already produced the vehicle. A linked
// vehicle that was since deleted from the fleet is not recreated.
func (w *ApprovalWorkflow) Materialize(ctx context.Context, req *domain.CarListingRequest) (v *domain.Vehicle, created bool, err error) {
	logger.EnterMethod("ApprovalWorkflow.Materialize", "requestID", req.ID)

	if req.Materialized() {
		linked, err := w.vehicleRepo.GetByID(ctx, req.VehicleID)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Linked vehicle no longer in fleet", "requestID", req.ID, "vehicleID", req.VehicleID)
			return nil, false, nil
		}
		if err != nil {
			logger.ExitMethodWithError("ApprovalWorkflow.Materialize", err, "requestID", req.ID)
			return nil, false, err
		}
		logger.ExitMethod("ApprovalWorkflow.Materialize", "requestID", req.ID, "vehicleID", linked.ID, "created", false)
		return linked, false, nil
	}

	// The request write may have been lost after the vehicle was stored
	fleet, err := w.vehicleRepo.List(ctx)
	if err != nil {
		logger.ExitMethodWithError("ApprovalWorkflow.Materialize", err, "requestID", req.ID)
		return nil, false, err
	}
	for i := range fleet {
		if fleet[i].ListingRequestID == req.ID {
			existing := fleet[i]
			logger.ExitMethod("ApprovalWorkflow.Materialize", "requestID", req.ID, "vehicleID", existing.ID, "created", false)
			return &existing, false, nil
		}
	}

	vehicle, err := domain.NewVehicle(w.newID(), req.VehicleInput(w.defaultImage), w.now())
	if err != nil {
		logger.ExitMethodWithError("ApprovalWorkflow.Materialize", err, "requestID", req.ID)
		return nil, false, err
	}
	vehicle.ListingRequestID = req.ID
	if err := w.vehicleRepo.Create(ctx, &vehicle); err != nil {
		logger.ExitMethodWithError("ApprovalWorkflow.Materialize", err, "requestID", req.ID)
		return nil, false, err
	}

	logger.ExitMethod("ApprovalWorkflow.Materialize", "requestID", req.ID, "vehicleID", vehicle.ID, "created", true)
	return &vehicle, true, nil
}
