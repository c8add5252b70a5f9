package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-portal/internal/domain"
)

func addVehicle(t *testing.T, f *fixture, daily int64) *domain.Vehicle {
	t.Helper()
	v, err := f.inventory.AddVehicle(context.Background(), vehicleInput("Toyota", "Corolla", daily))
	require.NoError(t, err)
	return v
}

func TestRentalRequestService_Submit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := addVehicle(t, f, 15000)

	t.Run("Derives days and amount", func(t *testing.T) {
		req, err := f.rentals.SubmitRentalRequest(ctx, rentalInput(v.ID))
		require.NoError(t, err)
		assert.Equal(t, 3, req.TotalDays)
		assert.Equal(t, int64(45000), req.TotalAmount)
		assert.Equal(t, domain.StatusPending, req.Status)
		assert.Equal(t, fixedNow, req.SubmittedAt)
		assert.Empty(t, req.Messages)
		assert.Equal(t, "Corolla", req.Vehicle.Model)
		assert.Equal(t, int64(15000), req.Vehicle.PricePerDay)
	})

	t.Run("End date must follow start date", func(t *testing.T) {
		in := rentalInput(v.ID)
		in.EndDate = in.StartDate
		_, err := f.rentals.SubmitRentalRequest(ctx, in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Malformed date", func(t *testing.T) {
		in := rentalInput(v.ID)
		in.StartDate = "01/02/2024"
		_, err := f.rentals.SubmitRentalRequest(ctx, in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unknown vehicle", func(t *testing.T) {
		_, err := f.rentals.SubmitRentalRequest(ctx, rentalInput("nope"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Unavailable vehicle", func(t *testing.T) {
		_, err := f.inventory.ToggleAvailability(ctx, v.ID)
		require.NoError(t, err)
		_, err = f.rentals.SubmitRentalRequest(ctx, rentalInput(v.ID))
		assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
	})
}

func TestRentalRequestService_SnapshotSurvivesVehicleChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := addVehicle(t, f, 15000)

	req, err := f.rentals.SubmitRentalRequest(ctx, rentalInput(v.ID))
	require.NoError(t, err)

	rate := int64(99000)
	_, err = f.inventory.UpdateVehicle(ctx, v.ID, domain.VehiclePatch{PricePerDay: &rate})
	require.NoError(t, err)
	require.NoError(t, f.inventory.DeleteVehicle(ctx, v.ID))

	stored, err := f.rentals.GetRentalRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), stored.Vehicle.PricePerDay)
	assert.Equal(t, int64(45000), stored.TotalAmount)
}

func TestRentalRequestService_ApproveLeavesInventoryAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := addVehicle(t, f, 15000)

	req, err := f.rentals.SubmitRentalRequest(ctx, rentalInput(v.ID))
	require.NoError(t, err)

	approved, err := f.rentals.ApproveRentalRequest(ctx, req.ID, "Confirmed")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)
	assert.Equal(t, "Confirmed", approved.AdminMessage)
	require.NotNil(t, approved.DecidedAt)
	assert.Equal(t, fixedNow, *approved.DecidedAt)

	fleet, err := f.inventory.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, fleet, 1)
	assert.Equal(t, *v, fleet[0])
}

func TestRentalRequestService_Transitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := addVehicle(t, f, 15000)

	t.Run("Cancel after approve is rejected", func(t *testing.T) {
		req, err := f.rentals.SubmitRentalRequest(ctx, rentalInput(v.ID))
		require.NoError(t, err)
		_, err = f.rentals.ApproveRentalRequest(ctx, req.ID, "Confirmed")
		require.NoError(t, err)

		_, err = f.rentals.CancelRentalRequest(ctx, req.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		var te *domain.TransitionError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, domain.StatusApproved, te.From)
		assert.Equal(t, domain.StatusCancelled, te.To)

		stored, err := f.rentals.GetRentalRequest(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, stored.Status)
	})

	t.Run("Deny after cancel is rejected", func(t *testing.T) {
		req, err := f.rentals.SubmitRentalRequest(ctx, rentalInput(v.ID))
		require.NoError(t, err)
		cancelled, err := f.rentals.CancelRentalRequest(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, cancelled.Status)

		_, err = f.rentals.DenyRentalRequest(ctx, req.ID, "too late")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("Approve twice is rejected", func(t *testing.T) {
		req, err := f.rentals.SubmitRentalRequest(ctx, rentalInput(v.ID))
		require.NoError(t, err)
		_, err = f.rentals.ApproveRentalRequest(ctx, req.ID, "first")
		require.NoError(t, err)
		_, err = f.rentals.ApproveRentalRequest(ctx, req.ID, "second")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		stored, err := f.rentals.GetRentalRequest(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, "first", stored.AdminMessage)
	})

	t.Run("Missing request", func(t *testing.T) {
		_, err := f.rentals.ApproveRentalRequest(ctx, "missing", "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Messages allowed in terminal state", func(t *testing.T) {
		pending, err := f.rentals.CountRentalRequests(ctx, domain.StatusFilter(domain.StatusPending))
		require.NoError(t, err)
		assert.Equal(t, 0, pending)

		reqs, err := f.rentals.ListRentalRequests(ctx, domain.StatusFilter(domain.StatusApproved))
		require.NoError(t, err)
		require.NotEmpty(t, reqs)

		updated, err := f.rentals.AppendMessage(ctx, reqs[0].ID, domain.RoleUser, "Where do I pick it up?")
		require.NoError(t, err)
		assert.Len(t, updated.Messages, 1)
	})
}

func TestRentalRequestService_Messages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := addVehicle(t, f, 15000)

	req, err := f.rentals.SubmitRentalRequest(ctx, rentalInput(v.ID))
	require.NoError(t, err)

	_, err = f.rentals.AppendMessage(ctx, req.ID, domain.RoleAdmin, "Please bring your licence")
	require.NoError(t, err)
	_, err = f.rentals.AppendMessage(ctx, req.ID, domain.RoleUser, "Will do")
	require.NoError(t, err)
	_, err = f.rentals.AppendMessage(ctx, req.ID, domain.RoleUser, "  Thanks  ")
	require.NoError(t, err)

	userUnread, err := f.rentals.UnreadCount(ctx, domain.RoleUser)
	require.NoError(t, err)
	adminUnread, err := f.rentals.UnreadCount(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, userUnread)
	assert.Equal(t, 2, adminUnread)

	read, err := f.rentals.MarkRead(ctx, req.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Thanks", read.Messages[2].Body)
	assert.False(t, read.Messages[0].Read, "admin's own message stays unread for the user")

	adminUnread, err = f.rentals.UnreadCount(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 0, adminUnread)
	userUnread, err = f.rentals.UnreadCount(ctx, domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, 1, userUnread)

	t.Run("Rejects empty body", func(t *testing.T) {
		_, err := f.rentals.AppendMessage(ctx, req.ID, domain.RoleUser, "   ")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Rejects unknown sender", func(t *testing.T) {
		_, err := f.rentals.AppendMessage(ctx, req.ID, domain.SenderRole("owner"), "hi")
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = f.rentals.MarkRead(ctx, req.ID, domain.SenderRole("owner"))
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = f.rentals.UnreadCount(ctx, domain.SenderRole("owner"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRentalRequestService_SubmitterAndRenterQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := addVehicle(t, f, 15000)

	anonymous, err := f.rentals.SubmitRentalRequest(ctx, rentalInput(v.ID))
	require.NoError(t, err)
	assert.Empty(t, anonymous.SubmittedBy)

	_, err = f.sessions.SignIn(ctx, domain.CurrentUser{Email: "Booker@Example.com", Name: "Booker"})
	require.NoError(t, err)

	in := rentalInput(v.ID)
	in.RenterEmail = "friend@example.com"
	signedIn, err := f.rentals.SubmitRentalRequest(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "booker@example.com", signedIn.SubmittedBy)

	mine, err := f.rentals.ListRentalRequestsByRenter(ctx, "BOOKER@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, signedIn.ID, mine[0].ID)

	ada, err := f.rentals.ListRentalRequestsByRenter(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Len(t, ada, 1)

	// the anonymous request has no submitter and must not match a blank email
	_, err = f.rentals.ListRentalRequestsByRenter(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	total, err := f.rentals.CountRentalRequests(ctx, domain.FilterAll)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}
