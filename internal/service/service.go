package service

import (
	"context"

	"carrental-portal/internal/domain"
)

type InventoryService interface {
	AddVehicle(ctx context.Context, in domain.VehicleInput) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, patch domain.VehiclePatch) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error
	ToggleAvailability(ctx context.Context, id string) (*domain.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
	ListAvailable(ctx context.Context) ([]domain.Vehicle, error)
}

type RentalRequestService interface {
	SubmitRentalRequest(ctx context.Context, in domain.RentalRequestInput) (*domain.RentalRequest, error)
	ApproveRentalRequest(ctx context.Context, id, message string) (*domain.RentalRequest, error)
	DenyRentalRequest(ctx context.Context, id, message string) (*domain.RentalRequest, error)
	CancelRentalRequest(ctx context.Context, id string) (*domain.RentalRequest, error)
	AppendMessage(ctx context.Context, id string, sender domain.SenderRole, body string) (*domain.RentalRequest, error)
	MarkRead(ctx context.Context, id string, viewer domain.SenderRole) (*domain.RentalRequest, error)
	GetRentalRequest(ctx context.Context, id string) (*domain.RentalRequest, error)
	ListRentalRequests(ctx context.Context, filter domain.StatusFilter) ([]domain.RentalRequest, error)
	ListRentalRequestsByRenter(ctx context.Context, email string) ([]domain.RentalRequest, error)
	CountRentalRequests(ctx context.Context, filter domain.StatusFilter) (int, error)
	UnreadCount(ctx context.Context, viewer domain.SenderRole) (int, error)
}

type ListingRequestService interface {
	SubmitListingRequest(ctx context.Context, in domain.CarListingInput) (*domain.CarListingRequest, error)
	ApproveListingRequest(ctx context.Context, id, message string) (*domain.CarListingRequest, error)
	DenyListingRequest(ctx context.Context, id, message string) (*domain.CarListingRequest, error)
	AppendMessage(ctx context.Context, id string, sender domain.SenderRole, body string) (*domain.CarListingRequest, error)
	MarkRead(ctx context.Context, id string, viewer domain.SenderRole) (*domain.CarListingRequest, error)
	GetListingRequest(ctx context.Context, id string) (*domain.CarListingRequest, error)
	ListListingRequests(ctx context.Context, filter domain.StatusFilter) ([]domain.CarListingRequest, error)
	ListListingRequestsByOwner(ctx context.Context, email string) ([]domain.CarListingRequest, error)
	CountListingRequests(ctx context.Context, filter domain.StatusFilter) (int, error)
	UnreadCount(ctx context.Context, viewer domain.SenderRole) (int, error)
}

type SessionService interface {
	CurrentUser(ctx context.Context) (*domain.CurrentUser, error)
	SignIn(ctx context.Context, user domain.CurrentUser) (*domain.CurrentUser, error)
	Logout(ctx context.Context) error
}

type EmailService interface {
	SendRentalDecision(ctx context.Context, req *domain.RentalRequest) error
	SendListingDecision(ctx context.Context, req *domain.CarListingRequest) error
}
