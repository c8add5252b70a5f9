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
	"carrental-portal/internal/utils"
)

type rentalRequestService struct {
	rentalRepo  repository.RentalRequestRepository
	vehicleRepo repository.VehicleRepository
	sessionRepo repository.SessionRepository
	hub         *events.Hub
	deps
}

func NewRentalRequestService(
	rentalRepo repository.RentalRequestRepository,
	vehicleRepo repository.VehicleRepository,
	sessionRepo repository.SessionRepository,
	hub *events.Hub,
	opts ...Option,
) RentalRequestService {
	return &rentalRequestService{
		rentalRepo:  rentalRepo,
		vehicleRepo: vehicleRepo,
		sessionRepo: sessionRepo,
		hub:         hub,
		deps:        newDeps(opts),
	}
}

func (s *rentalRequestService) SubmitRentalRequest(ctx context.Context, in domain.RentalRequestInput) (*domain.RentalRequest, error) {
	logger.EnterMethod("rentalRequestService.SubmitRentalRequest", "vehicleID", in.VehicleID, "startDate", in.StartDate, "endDate", in.EndDate)

	if err := domain.Validate(in); err != nil {
		logger.ExitMethodWithError("rentalRequestService.SubmitRentalRequest", err)
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, in.VehicleID)
	if err != nil {
		logger.ExitMethodWithError("rentalRequestService.SubmitRentalRequest", err, "vehicleID", in.VehicleID)
		return nil, err
	}
	if !vehicle.Available {
		err := fmt.Errorf("vehicle %s: %w", vehicle.ID, domain.ErrVehicleUnavailable)
		logger.ExitMethodWithError("rentalRequestService.SubmitRentalRequest", err)
		return nil, err
	}

	quote, err := utils.CalculateRentalCost(in.StartDate, in.EndDate, vehicle.PricePerDay)
	if err != nil {
		err = fmt.Errorf("%w: %v", domain.ErrValidation, err)
		logger.ExitMethodWithError("rentalRequestService.SubmitRentalRequest", err)
		return nil, err
	}

	req := domain.RentalRequest{
		ID:           s.newID(),
		VehicleID:    vehicle.ID,
		Vehicle:      vehicle.Snapshot(),
		RenterName:   in.RenterName,
		RenterEmail:  in.RenterEmail,
		RenterPhone:  in.RenterPhone,
		SubmittedBy:  submitter(ctx, s.sessionRepo),
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		TotalDays:    quote.Days,
		TotalAmount:  quote.TotalAmount,
		Notes:        in.Notes,
		Status:       domain.StatusPending,
		SubmittedAt:  s.now(),
		Conversation: domain.Conversation{Messages: []domain.Message{}},
	}
	if err := s.rentalRepo.Create(ctx, &req); err != nil {
		logger.ExitMethodWithError("rentalRequestService.SubmitRentalRequest", err)
		return nil, err
	}

	s.publish(events.RentalSubmitted, &req)
	logger.ExitMethod("rentalRequestService.SubmitRentalRequest", "requestID", req.ID, "totalAmount", req.TotalAmount)
	return &req, nil
}

func (s *rentalRequestService) ApproveRentalRequest(ctx context.Context, id, message string) (*domain.RentalRequest, error) {
	return s.decide(ctx, id, domain.StatusApproved, message)
}

func (s *rentalRequestService) DenyRentalRequest(ctx context.Context, id, message string) (*domain.RentalRequest, error) {
	return s.decide(ctx, id, domain.StatusDenied, message)
}

func (s *rentalRequestService) CancelRentalRequest(ctx context.Context, id string) (*domain.RentalRequest, error) {
	return s.decide(ctx, id, domain.StatusCancelled, "")
}

func (s *rentalRequestService) decide(ctx context.Context, id string, to domain.RequestStatus, message string) (*domain.RentalRequest, error) {
	logger.EnterMethod("rentalRequestService.decide", "requestID", id, "status", to)

	req, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("rentalRequestService.decide", err, "requestID", id)
		return nil, err
	}
	if err := domain.ValidateTransition(req.Status, to); err != nil {
		logger.ExitMethodWithError("rentalRequestService.decide", err, "requestID", id)
		return nil, err
	}

	decidedAt := s.now()
	req.Status = to
	req.DecidedAt = &decidedAt
	if message != "" {
		req.AdminMessage = message
	}
	if err := s.rentalRepo.Update(ctx, req); err != nil {
		logger.ExitMethodWithError("rentalRequestService.decide", err, "requestID", id)
		return nil, err
	}

	kind := events.RentalDecided
	if to == domain.StatusCancelled {
		kind = events.RentalCancelled
	}
	s.publish(kind, req)
	logger.ExitMethod("rentalRequestService.decide", "requestID", id, "status", to)
	return req, nil
}

func (s *rentalRequestService) AppendMessage(ctx context.Context, id string, sender domain.SenderRole, body string) (*domain.RentalRequest, error) {
	logger.EnterMethod("rentalRequestService.AppendMessage", "requestID", id, "sender", sender)

	body, err := checkMessage(sender, body)
	if err != nil {
		logger.ExitMethodWithError("rentalRequestService.AppendMessage", err, "requestID", id)
		return nil, err
	}
	req, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("rentalRequestService.AppendMessage", err, "requestID", id)
		return nil, err
	}
	req.Append(sender, body, s.now())
	if err := s.rentalRepo.Update(ctx, req); err != nil {
		logger.ExitMethodWithError("rentalRequestService.AppendMessage", err, "requestID", id)
		return nil, err
	}

	s.publish(events.RentalMessage, req)
	logger.ExitMethod("rentalRequestService.AppendMessage", "requestID", id, "messages", len(req.Messages))
	return req, nil
}

// MarkRead marks the counterpart's messages read for viewer. Nothing is
// written when every message was already read.
func (s *rentalRequestService) MarkRead(ctx context.Context, id string, viewer domain.SenderRole) (*domain.RentalRequest, error) {
	if !viewer.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, viewer)
	}
	req, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.MarkReadBy(viewer) == 0 {
		return req, nil
	}
	if err := s.rentalRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	logger.Debug("Rental request messages marked read", "requestID", id, "viewer", viewer)
	return req, nil
}

func (s *rentalRequestService) GetRentalRequest(ctx context.Context, id string) (*domain.RentalRequest, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalRequestService) ListRentalRequests(ctx context.Context, filter domain.StatusFilter) ([]domain.RentalRequest, error) {
	return s.rentalRepo.List(ctx, filter)
}

// ListRentalRequestsByRenter matches the renter email or the signed-in submitter
func (s *rentalRequestService) ListRentalRequestsByRenter(ctx context.Context, email string) ([]domain.RentalRequest, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	all, err := s.rentalRepo.List(ctx, domain.FilterAll)
	if err != nil {
		return nil, err
	}
	mine := make([]domain.RentalRequest, 0)
	for _, r := range all {
		if strings.EqualFold(r.RenterEmail, email) || strings.EqualFold(r.SubmittedBy, email) {
			mine = append(mine, r)
		}
	}
	return mine, nil
}

func (s *rentalRequestService) CountRentalRequests(ctx context.Context, filter domain.StatusFilter) (int, error) {
	reqs, err := s.rentalRepo.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(reqs), nil
}

// UnreadCount sums the messages viewer has not read across all rental requests
func (s *rentalRequestService) UnreadCount(ctx context.Context, viewer domain.SenderRole) (int, error) {
	if !viewer.Valid() {
		return 0, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, viewer)
	}
	reqs, err := s.rentalRepo.List(ctx, domain.FilterAll)
	if err != nil {
		return 0, err
	}
	total := 0
	for i := range reqs {
		total += reqs[i].UnreadFor(viewer)
	}
	return total, nil
}

func (s *rentalRequestService) publish(kind events.Kind, req *domain.RentalRequest) {
	s.hub.Publish(events.Event{
		Kind:       kind,
		Collection: storage.KeyRentalRequests,
		ID:         req.ID,
		Payload:    *req,
		At:         s.now(),
	})
}

func checkMessage(sender domain.SenderRole, body string) (string, error) {
	if !sender.Valid() {
		return "", fmt.Errorf("%w: unknown sender %q", domain.ErrValidation, sender)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return "", fmt.Errorf("%w: message body is empty", domain.ErrValidation)
	}
	return body, nil
}

// submitter returns the signed-in email, or "" when nobody is signed in
func submitter(ctx context.Context, sessionRepo repository.SessionRepository) string {
	if sessionRepo == nil {
		return ""
	}
	user, err := sessionRepo.Get(ctx)
	if err != nil || !user.IsAuthenticated {
		return ""
	}
	return user.Email
}
