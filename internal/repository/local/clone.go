package local

import "carrental-portal/internal/domain"

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

func cloneMessages(m []domain.Message) []domain.Message {
	if m == nil {
		return nil
	}
	return append([]domain.Message{}, m...)
}

func cloneVehicle(v domain.Vehicle) domain.Vehicle {
	v.Features = cloneStrings(v.Features)
	v.Images = cloneStrings(v.Images)
	if v.Owner != nil {
		owner := *v.Owner
		v.Owner = &owner
	}
	return v
}

func cloneRental(r domain.RentalRequest) domain.RentalRequest {
	r.Messages = cloneMessages(r.Messages)
	if r.DecidedAt != nil {
		at := *r.DecidedAt
		r.DecidedAt = &at
	}
	return r
}

func cloneListing(r domain.CarListingRequest) domain.CarListingRequest {
	r.Vehicle.Features = cloneStrings(r.Vehicle.Features)
	r.Images = cloneStrings(r.Images)
	r.Messages = cloneMessages(r.Messages)
	if r.DecidedAt != nil {
		at := *r.DecidedAt
		r.DecidedAt = &at
	}
	return r
}
