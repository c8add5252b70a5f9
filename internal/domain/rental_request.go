package domain

import "time"

// RentalRequest is a renter's request to use a vehicle for a date range.
// TotalDays and TotalAmount are derived at submission and never edited.
// TotalAmount is in minor currency units like Vehicle.PricePerDay.
type RentalRequest struct {
	ID           string          `json:"id"`
	VehicleID    string          `json:"vehicle_id"`
	Vehicle      VehicleSnapshot `json:"vehicle"`
	RenterName   string          `json:"renter_name"`
	RenterEmail  string          `json:"renter_email"`
	RenterPhone  string          `json:"renter_phone"`
	SubmittedBy  string          `json:"submitted_by,omitempty"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	TotalDays    int             `json:"total_days"`
	TotalAmount  int64           `json:"total_amount"`
	Notes        string          `json:"notes,omitempty"`
	Status       RequestStatus   `json:"status"`
	SubmittedAt  time.Time       `json:"submitted_at"`
	AdminMessage string          `json:"admin_message,omitempty"`
	DecidedAt    *time.Time      `json:"decided_at,omitempty"`
	Conversation
}

type RentalRequestInput struct {
	VehicleID   string `json:"vehicle_id" validate:"required"`
	RenterName  string `json:"renter_name" validate:"required"`
	RenterEmail string `json:"renter_email" validate:"required,email"`
	RenterPhone string `json:"renter_phone" validate:"required"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Notes       string `json:"notes"`
}
