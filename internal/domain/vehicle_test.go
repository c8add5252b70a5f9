package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVehicleInput() VehicleInput {
	return VehicleInput{
		Make:        "Toyota",
		Model:       "Camry",
		Year:        2022,
		Category:    "sedan",
		Seats:       5,
		PricePerDay: 15000,
		Features:    []string{"AC", "Bluetooth"},
	}
}

func TestNewVehicle(t *testing.T) {
	created := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		v, err := NewVehicle("v1", validVehicleInput(), created)
		require.NoError(t, err)
		assert.Equal(t, "v1", v.ID)
		assert.True(t, v.Available)
		assert.Equal(t, created, v.CreatedAt)
		assert.NotNil(t, v.Images)
	})

	t.Run("Missing make", func(t *testing.T) {
		in := validVehicleInput()
		in.Make = ""
		_, err := NewVehicle("v1", in, created)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "make")
	})

	t.Run("Zero daily rate", func(t *testing.T) {
		in := validVehicleInput()
		in.PricePerDay = 0
		_, err := NewVehicle("v1", in, created)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "price_per_day")
	})
}

func TestVehiclePatch_Apply(t *testing.T) {
	v, err := NewVehicle("v1", validVehicleInput(), time.Now())
	require.NoError(t, err)

	color := "Black"
	rate := int64(18000)
	out, err := VehiclePatch{Color: &color, PricePerDay: &rate}.Apply(v)
	require.NoError(t, err)
	assert.Equal(t, "Black", out.Color)
	assert.Equal(t, int64(18000), out.PricePerDay)
	assert.Equal(t, "Camry", out.Model)
	assert.Equal(t, "", v.Color, "original is untouched")

	empty := ""
	_, err = VehiclePatch{Model: &empty}.Apply(v)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCarListingRequest_VehicleInput(t *testing.T) {
	req := CarListingRequest{
		ID:      "l1",
		Owner:   OwnerContact{Name: "Ada", Email: "ada@example.com", Phone: "0801", City: "Lagos", State: "LA"},
		Vehicle: ProposedVehicle{Make: "Honda", Model: "Accord", Year: 2021, Plate: "ABC-123", Seats: 5},
		Pricing: Pricing{Daily: 12000, Weekly: 70000},
	}

	in := req.VehicleInput("/img/default.jpg")
	assert.Equal(t, "Honda", in.Make)
	assert.Equal(t, int64(12000), in.PricePerDay)
	assert.Equal(t, []string{"/img/default.jpg"}, in.Images)
	assert.Equal(t, "Lagos, LA", in.Location)
	require.NotNil(t, in.Owner)
	assert.Equal(t, "Ada", in.Owner.Name)
	assert.False(t, req.Materialized())

	req.Images = []string{"/img/a.jpg"}
	assert.Equal(t, []string{"/img/a.jpg"}, req.VehicleInput("/img/default.jpg").Images)
}

func TestValidate_ListingInput(t *testing.T) {
	in := CarListingInput{
		Owner:   OwnerContact{Name: "Ada", Email: "not-an-email", Phone: "0801"},
		Vehicle: ProposedVehicle{Make: "Honda", Model: "Accord", Year: 2021},
		Pricing: Pricing{Daily: 12000},
	}
	err := Validate(in)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "plate")
}
