package service

import (
	"context"
	"fmt"
	"strings"

	"carrental-portal/internal/domain"
	"carrental-portal/internal/events"
	"carrental-portal/internal/logger"
	"carrental-portal/internal/repository"
	"carrental-portal/internal/storage"
)

type listingRequestService struct {
	listingRepo repository.ListingRequestRepository
	sessionRepo repository.SessionRepository
	workflow    *ApprovalWorkflow
	hub         *events.Hub
	deps
}

func NewListingRequestService(
	listingRepo repository.ListingRequestRepository,
	sessionRepo repository.SessionRepository,
	workflow *ApprovalWorkflow,
	hub *events.Hub,
	opts ...Option,
) ListingRequestService {
	return &listingRequestService{
		listingRepo: listingRepo,
		sessionRepo: sessionRepo,
		workflow:    workflow,
		hub:         hub,
		deps:        newDeps(opts),
	}
}

func (s *listingRequestService) SubmitListingRequest(ctx context.Context, in domain.CarListingInput) (*domain.CarListingRequest, error) {
	logger.EnterMethod("listingRequestService.SubmitListingRequest", "owner", in.Owner.Email, "make", in.Vehicle.Make, "model", in.Vehicle.Model)

	if err := domain.Validate(in); err != nil {
		logger.ExitMethodWithError("listingRequestService.SubmitListingRequest", err)
		return nil, err
	}

	images := in.Images
	if images == nil {
		images = []string{}
	}
	req := domain.CarListingRequest{
		ID:           s.newID(),
		Owner:        in.Owner,
		Vehicle:      in.Vehicle,
		Pricing:      in.Pricing,
		Images:       images,
		Status:       domain.StatusPending,
		SubmittedBy:  submitter(ctx, s.sessionRepo),
		SubmittedAt:  s.now(),
		Conversation: domain.Conversation{Messages: []domain.Message{}},
	}
	if err := s.listingRepo.Create(ctx, &req); err != nil {
		logger.ExitMethodWithError("listingRequestService.SubmitListingRequest", err)
		return nil, err
	}

	s.publish(events.ListingSubmitted, &req)
	logger.ExitMethod("listingRequestService.SubmitListingRequest", "requestID", req.ID)
	return &req, nil
}

// ApproveListingRequest approves a pending listing and adds its vehicle to the
// fleet. Approving a request that is no longer pending fails with
// ErrInvalidTransition and leaves the fleet untouched.
func (s *listingRequestService) ApproveListingRequest(ctx context.Context, id, message string) (*domain.CarListingRequest, error) {
	logger.EnterMethod("listingRequestService.ApproveListingRequest", "requestID", id)

	req, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("listingRequestService.ApproveListingRequest", err, "requestID", id)
		return nil, err
	}
	if err := domain.ValidateTransition(req.Status, domain.StatusApproved); err != nil {
		logger.ExitMethodWithError("listingRequestService.ApproveListingRequest", err, "requestID", id)
		return nil, err
	}

	vehicle, created, err := s.workflow.Materialize(ctx, req)
	if err != nil {
		logger.ExitMethodWithError("listingRequestService.ApproveListingRequest", err, "requestID", id)
		return nil, err
	}

	decidedAt := s.now()
	req.Status = domain.StatusApproved
	req.DecidedAt = &decidedAt
	if message != "" {
		req.AdminMessage = message
	}
	if vehicle != nil {
		req.VehicleID = vehicle.ID
	}
	if err := s.listingRepo.Update(ctx, req); err != nil {
		logger.ExitMethodWithError("listingRequestService.ApproveListingRequest", err, "requestID", id)
		return nil, err
	}

	if created {
		s.hub.Publish(events.Event{
			Kind:       events.VehicleMaterialized,
			Collection: storage.KeyVehicles,
			ID:         vehicle.ID,
			Payload:    *vehicle,
			At:         decidedAt,
		})
	}
	s.publish(events.ListingDecided, req)
	logger.ExitMethod("listingRequestService.ApproveListingRequest", "requestID", id, "vehicleID", req.VehicleID)
	return req, nil
}

func (s *listingRequestService) DenyListingRequest(ctx context.Context, id, message string) (*domain.CarListingRequest, error) {
	logger.EnterMethod("listingRequestService.DenyListingRequest", "requestID", id)

	req, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("listingRequestService.DenyListingRequest", err, "requestID", id)
		return nil, err
	}
	if err := domain.ValidateTransition(req.Status, domain.StatusDenied); err != nil {
		logger.ExitMethodWithError("listingRequestService.DenyListingRequest", err, "requestID", id)
		return nil, err
	}

	decidedAt := s.now()
	req.Status = domain.StatusDenied
	req.DecidedAt = &decidedAt
	if message != "" {
		req.AdminMessage = message
	}
	if err := s.listingRepo.Update(ctx, req); err != nil {
		logger.ExitMethodWithError("listingRequestService.DenyListingRequest", err, "requestID", id)
		return nil, err
	}

	s.publish(events.ListingDecided, req)
	logger.ExitMethod("listingRequestService.DenyListingRequest", "requestID", id)
	return req, nil
}

func (s *listingRequestService) AppendMessage(ctx context.Context, id string, sender domain.SenderRole, body string) (*domain.CarListingRequest, error) {
	logger.EnterMethod("listingRequestService.AppendMessage", "requestID", id, "sender", sender)

	body, err := checkMessage(sender, body)
	if err != nil {
		logger.ExitMethodWithError("listingRequestService.AppendMessage", err, "requestID", id)
		return nil, err
	}
	req, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("listingRequestService.AppendMessage", err, "requestID", id)
		return nil, err
	}
	req.Append(sender, body, s.now())
	if err := s.listingRepo.Update(ctx, req); err != nil {
		logger.ExitMethodWithError("listingRequestService.AppendMessage", err, "requestID", id)
		return nil, err
	}

	s.publish(events.ListingMessage, req)
	logger.ExitMethod("listingRequestService.AppendMessage", "requestID", id, "messages", len(req.Messages))
	return req, nil
}

func (s *listingRequestService) MarkRead(ctx context.Context, id string, viewer domain.SenderRole) (*domain.CarListingRequest, error) {
	if !viewer.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, viewer)
	}
	req, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.MarkReadBy(viewer) == 0 {
		return req, nil
	}
	if err := s.listingRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	logger.Debug("Listing request messages marked read", "requestID", id, "viewer", viewer)
	return req, nil
}

func (s *listingRequestService) GetListingRequest(ctx context.Context, id string) (*domain.CarListingRequest, error) {
	return s.listingRepo.GetByID(ctx, id)
}

func (s *listingRequestService) ListListingRequests(ctx context.Context, filter domain.StatusFilter) ([]domain.CarListingRequest, error) {
	return s.listingRepo.List(ctx, filter)
}

func (s *listingRequestService) ListListingRequestsByOwner(ctx context.Context, email string) ([]domain.CarListingRequest, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	all, err := s.listingRepo.List(ctx, domain.FilterAll)
	if err != nil {
		return nil, err
	}
	mine := make([]domain.CarListingRequest, 0)
	for _, r := range all {
		if strings.EqualFold(r.Owner.Email, email) || strings.EqualFold(r.SubmittedBy, email) {
			mine = append(mine, r)
		}
	}
	return mine, nil
}

func (s *listingRequestService) CountListingRequests(ctx context.Context, filter domain.StatusFilter) (int, error) {
	reqs, err := s.listingRepo.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(reqs), nil
}

func (s *listingRequestService) UnreadCount(ctx context.Context, viewer domain.SenderRole) (int, error) {
	if !viewer.Valid() {
		return 0, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, viewer)
	}
	reqs, err := s.listingRepo.List(ctx, domain.FilterAll)
	if err != nil {
		return 0, err
	}
	total := 0
	for i := range reqs {
		total += reqs[i].UnreadFor(viewer)
	}
	return total, nil
}

func (s *listingRequestService) publish(kind events.Kind, req *domain.CarListingRequest) {
	s.hub.Publish(events.Event{
		Kind:       kind,
		Collection: storage.KeyCarListingRequests,
		ID:         req.ID,
		Payload:    *req,
		At:         s.now(),
	})
}
