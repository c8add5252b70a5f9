package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"carrental-portal/internal/domain"
	"carrental-portal/internal/events"
	"carrental-portal/internal/repository/local"
	"carrental-portal/internal/service"
	"carrental-portal/internal/storage"
)

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalDecision(ctx context.Context, req *domain.RentalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockEmailService) SendListingDecision(ctx context.Context, req *domain.CarListingRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

var fixedNow = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

// sequence hands out ids like veh-1, veh-2 so assertions stay readable
type sequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func (s *sequence) next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}

func testOptions(prefix string) []service.Option {
	seq := &sequence{prefix: prefix}
	return []service.Option{
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithIDGenerator(seq.next),
	}
}

// recorder collects every event published on a hub
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) handle(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []events.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]events.Kind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

type fixture struct {
	store     *local.Store
	hub       *events.Hub
	recorded  *recorder
	inventory service.InventoryService
	rentals   service.RentalRequestService
	listings  service.ListingRequestService
	sessions  service.SessionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	adapter := storage.NewAdapter(storage.NewMemoryBackend(), 0)
	store := local.NewStore(ctx, adapter)
	hub := events.NewHub()
	rec := &recorder{}
	hub.Subscribe(rec.handle)

	workflow := service.NewApprovalWorkflow(store.VehicleRepository, "/images/cars/default.jpg", testOptions("veh")...)
	return &fixture{
		store:     store,
		hub:       hub,
		recorded:  rec,
		inventory: service.NewInventoryService(store.VehicleRepository, hub, testOptions("car")...),
		rentals: service.NewRentalRequestService(store.RentalRequestRepository, store.VehicleRepository,
			store.SessionRepository, hub, testOptions("rr")...),
		listings: service.NewListingRequestService(store.ListingRequestRepository, store.SessionRepository,
			workflow, hub, testOptions("lr")...),
		sessions: service.NewSessionService(store.SessionRepository, testOptions("s")...),
	}
}

func vehicleInput(make, model string, daily int64) domain.VehicleInput {
	return domain.VehicleInput{
		Make:         make,
		Model:        model,
		Year:         2022,
		Category:     "Sedan",
		Transmission: "Automatic",
		FuelType:     "Petrol",
		Seats:        5,
		PricePerDay:  daily,
		Location:     "Lagos",
		Features:     []string{"AC", "Bluetooth"},
		Images:       []string{"/images/cars/corolla.jpg"},
	}
}

func rentalInput(vehicleID string) domain.RentalRequestInput {
	return domain.RentalRequestInput{
		VehicleID:   vehicleID,
		RenterName:  "Ada Obi",
		RenterEmail: "ada@example.com",
		RenterPhone: "+2348000000000",
		StartDate:   "2024-02-01",
		EndDate:     "2024-02-04",
	}
}

func listingInput() domain.CarListingInput {
	return domain.CarListingInput{
		Owner: domain.OwnerContact{
			Name:  "Tunde Bello",
			Email: "tunde@example.com",
			Phone: "+2348011111111",
			City:  "Abuja",
			State: "FCT",
		},
		Vehicle: domain.ProposedVehicle{
			Make:         "Honda",
			Model:        "Accord",
			Year:         2021,
			Plate:        "ABC-123XY",
			Color:        "Black",
			Mileage:      42000,
			Transmission: "Automatic",
			FuelType:     "Petrol",
			Seats:        5,
			Category:     "Sedan",
		},
		Pricing: domain.Pricing{Daily: 12000, Weekly: 75000},
	}
}
