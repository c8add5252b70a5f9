package domain

import "time"

// Vehicle is a unit of rentable inventory. Available is the only gate for
// whether the vehicle is offered to renters. Prices are in minor currency
// units, so 15000 renders as 150.00.
type Vehicle struct {
	ID            string        `json:"id"`
	Make          string        `json:"make" validate:"required"`
	Model         string        `json:"model" validate:"required"`
	Year          int           `json:"year" validate:"gte=1950,lte=2100"`
	Category      string        `json:"category"`
	Transmission  string        `json:"transmission"`
	FuelType      string        `json:"fuel_type"`
	Seats         int           `json:"seats" validate:"gte=0,lte=60"`
	Color         string        `json:"color"`
	PricePerDay   int64         `json:"price_per_day" validate:"gt=0"`
	PricePerWeek  int64         `json:"price_per_week" validate:"gte=0"`
	PricePerMonth int64         `json:"price_per_month" validate:"gte=0"`
	Location      string        `json:"location"`
	Features      []string      `json:"features"`
	Description   string        `json:"description"`
	Mileage       int           `json:"mileage" validate:"gte=0"`
	Images        []string      `json:"images"`
	Available     bool          `json:"available"`
	CreatedAt     time.Time     `json:"created_at"`
	Owner         *OwnerContact `json:"owner,omitempty"`
	// Set when the vehicle was materialized from an approved listing request
	ListingRequestID string `json:"listing_request_id,omitempty"`
}

// VehicleInput carries the caller-supplied fields of a new vehicle
type VehicleInput struct {
	Make          string
	Model         string
	Year          int
	Category      string
	Transmission  string
	FuelType      string
	Seats         int
	Color         string
	PricePerDay   int64
	PricePerWeek  int64
	PricePerMonth int64
	Location      string
	Features      []string
	Description   string
	Mileage       int
	Images        []string
	Owner         *OwnerContact
}

// NewVehicle builds an available vehicle from in and validates it
func NewVehicle(id string, in VehicleInput, createdAt time.Time) (Vehicle, error) {
	v := Vehicle{
		ID:            id,
		Make:          in.Make,
		Model:         in.Model,
		Year:          in.Year,
		Category:      in.Category,
		Transmission:  in.Transmission,
		FuelType:      in.FuelType,
		Seats:         in.Seats,
		Color:         in.Color,
		PricePerDay:   in.PricePerDay,
		PricePerWeek:  in.PricePerWeek,
		PricePerMonth: in.PricePerMonth,
		Location:      in.Location,
		Features:      nonNil(in.Features),
		Description:   in.Description,
		Mileage:       in.Mileage,
		Images:        nonNil(in.Images),
		Available:     true,
		CreatedAt:     createdAt,
		Owner:         in.Owner,
	}
	if err := Validate(v); err != nil {
		return Vehicle{}, err
	}
	return v, nil
}

// VehiclePatch holds the fields to merge into an existing vehicle; nil means unchanged
type VehiclePatch struct {
	Make          *string
	Model         *string
	Year          *int
	Category      *string
	Transmission  *string
	FuelType      *string
	Seats         *int
	Color         *string
	PricePerDay   *int64
	PricePerWeek  *int64
	PricePerMonth *int64
	Location      *string
	Features      []string
	Description   *string
	Mileage       *int
	Images        []string
	Available     *bool
}

// Apply returns a copy of v with the patch merged and validated
func (p VehiclePatch) Apply(v Vehicle) (Vehicle, error) {
	setIf(&v.Make, p.Make)
	setIf(&v.Model, p.Model)
	setIf(&v.Year, p.Year)
	setIf(&v.Category, p.Category)
	setIf(&v.Transmission, p.Transmission)
	setIf(&v.FuelType, p.FuelType)
	setIf(&v.Seats, p.Seats)
	setIf(&v.Color, p.Color)
	setIf(&v.PricePerDay, p.PricePerDay)
	setIf(&v.PricePerWeek, p.PricePerWeek)
	setIf(&v.PricePerMonth, p.PricePerMonth)
	setIf(&v.Location, p.Location)
	setIf(&v.Description, p.Description)
	setIf(&v.Mileage, p.Mileage)
	setIf(&v.Available, p.Available)
	if p.Features != nil {
		v.Features = append([]string(nil), p.Features...)
	}
	if p.Images != nil {
		v.Images = append([]string(nil), p.Images...)
	}
	if err := Validate(v); err != nil {
		return Vehicle{}, err
	}
	return v, nil
}

// VehicleSnapshot is the copy of vehicle fields a rental request keeps from
// submission time.
type VehicleSnapshot struct {
	ID          string `json:"id"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	Category    string `json:"category"`
	PricePerDay int64  `json:"price_per_day"`
	Location    string `json:"location"`
	Image       string `json:"image,omitempty"`
}

func (v Vehicle) Snapshot() VehicleSnapshot {
	s := VehicleSnapshot{
		ID:          v.ID,
		Make:        v.Make,
		Model:       v.Model,
		Year:        v.Year,
		Category:    v.Category,
		PricePerDay: v.PricePerDay,
		Location:    v.Location,
	}
	if len(v.Images) > 0 {
		s.Image = v.Images[0]
	}
	return s
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}
