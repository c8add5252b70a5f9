package domain

import "time"

type OwnerContact struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
}

// ProposedVehicle is the owner's description of the car offered to the fleet
type ProposedVehicle struct {
	Make            string   `json:"make" validate:"required"`
	Model           string   `json:"model" validate:"required"`
	Year            int      `json:"year" validate:"gte=1950,lte=2100"`
	Plate           string   `json:"plate" validate:"required"`
	Color           string   `json:"color"`
	Mileage         int      `json:"mileage" validate:"gte=0"`
	Transmission    string   `json:"transmission"`
	FuelType        string   `json:"fuel_type"`
	Seats           int      `json:"seats" validate:"gte=0,lte=60"`
	Category        string   `json:"category"`
	Features        []string `json:"features"`
	Description     string   `json:"description"`
	InsuranceValid  bool     `json:"insurance_valid"`
	RoadworthyValid bool     `json:"roadworthy_valid"`
}

// Pricing is in minor currency units
type Pricing struct {
	Daily   int64 `json:"daily" validate:"gt=0"`
	Weekly  int64 `json:"weekly" validate:"gte=0"`
	Monthly int64 `json:"monthly" validate:"gte=0"`
}

type CarListingInput struct {
	Owner   OwnerContact    `json:"owner"`
	Vehicle ProposedVehicle `json:"vehicle"`
	Pricing Pricing         `json:"pricing"`
	Images  []string        `json:"images"`
}

// CarListingRequest is an owner's request to add a vehicle to the fleet.
// VehicleID links to the vehicle materialized on approval; it is set at most once.
type CarListingRequest struct {
	ID           string          `json:"id"`
	Owner        OwnerContact    `json:"owner"`
	Vehicle      ProposedVehicle `json:"vehicle"`
	Pricing      Pricing         `json:"pricing"`
	Images       []string        `json:"images"`
	Status       RequestStatus   `json:"status"`
	SubmittedBy  string          `json:"submitted_by,omitempty"`
	SubmittedAt  time.Time       `json:"submitted_at"`
	AdminMessage string          `json:"admin_message,omitempty"`
	DecidedAt    *time.Time      `json:"decided_at,omitempty"`
	VehicleID    string          `json:"vehicle_id,omitempty"`
	Conversation
}

// Materialized reports whether a fleet vehicle was already created for the listing
func (r *CarListingRequest) Materialized() bool {
	return r.VehicleID != ""
}

// VehicleInput converts the proposal into fleet vehicle fields. Images fall
// back to defaultImage when the owner supplied none.
func (r *CarListingRequest) VehicleInput(defaultImage string) VehicleInput {
	images := append([]string(nil), r.Images...)
	if len(images) == 0 && defaultImage != "" {
		images = []string{defaultImage}
	}
	owner := r.Owner
	return VehicleInput{
		Make:          r.Vehicle.Make,
		Model:         r.Vehicle.Model,
		Year:          r.Vehicle.Year,
		Category:      r.Vehicle.Category,
		Transmission:  r.Vehicle.Transmission,
		FuelType:      r.Vehicle.FuelType,
		Seats:         r.Vehicle.Seats,
		Color:         r.Vehicle.Color,
		PricePerDay:   r.Pricing.Daily,
		PricePerWeek:  r.Pricing.Weekly,
		PricePerMonth: r.Pricing.Monthly,
		Location:      locationOf(r.Owner),
		Features:      append([]string(nil), r.Vehicle.Features...),
		Description:   r.Vehicle.Description,
		Mileage:       r.Vehicle.Mileage,
		Images:        images,
		Owner:         &owner,
	}
}

func locationOf(o OwnerContact) string {
	switch {
	case o.City != "" && o.State != "":
		return o.City + ", " + o.State
	case o.City != "":
		return o.City
	default:
		return o.State
	}
}
