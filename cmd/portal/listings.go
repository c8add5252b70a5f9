package main

import (
	"context"
	"flag"
	"fmt"

	"carrental-portal/internal/domain"
)

func (a *app) listingSubmit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("listings submit", flag.ContinueOnError)
	var in domain.CarListingInput
	var features, images string
	fs.StringVar(&in.Owner.Name, "owner-name", "", "owner name")
	fs.StringVar(&in.Owner.Email, "owner-email", "", "owner email")
	fs.StringVar(&in.Owner.Phone, "owner-phone", "", "owner phone")
	fs.StringVar(&in.Owner.Address, "address", "", "owner street address")
	fs.StringVar(&in.Owner.City, "city", "", "owner city")
	fs.StringVar(&in.Owner.State, "state", "", "owner state")
	fs.StringVar(&in.Vehicle.Make, "make", "", "manufacturer")
	fs.StringVar(&in.Vehicle.Model, "model", "", "model name")
	fs.IntVar(&in.Vehicle.Year, "year", 0, "model year")
	fs.StringVar(&in.Vehicle.Plate, "plate", "", "licence plate")
	fs.StringVar(&in.Vehicle.Color, "color", "", "color")
	fs.IntVar(&in.Vehicle.Mileage, "mileage", 0, "mileage")
	fs.StringVar(&in.Vehicle.Transmission, "transmission", "", "transmission")
	fs.StringVar(&in.Vehicle.FuelType, "fuel", "", "fuel type")
	fs.IntVar(&in.Vehicle.Seats, "seats", 0, "seat count")
	fs.StringVar(&in.Vehicle.Category, "category", "", "category")
	fs.StringVar(&features, "features", "", "comma separated features")
	fs.StringVar(&in.Vehicle.Description, "description", "", "free text description")
	fs.BoolVar(&in.Vehicle.InsuranceValid, "insurance", false, "insurance is valid")
	fs.BoolVar(&in.Vehicle.RoadworthyValid, "roadworthy", false, "roadworthiness certificate is valid")
	fs.Int64Var(&in.Pricing.Daily, "daily", 0, "daily rate in minor currency units")
	fs.Int64Var(&in.Pricing.Weekly, "weekly", 0, "weekly rate in minor currency units")
	fs.Int64Var(&in.Pricing.Monthly, "monthly", 0, "monthly rate in minor currency units")
	fs.StringVar(&images, "images", "", "comma separated image references")
	if _, err := parse(fs, args, false); err != nil {
		return err
	}
	in.Vehicle.Features = splitList(features)
	in.Images = splitList(images)

	req, err := a.listings.SubmitListingRequest(ctx, in)
	if err != nil {
		return err
	}
	return a.print(req)
}

func (a *app) listingApprove(ctx context.Context, args []string) error {
	return a.listingDecision(ctx, "listings approve", args, a.listings.ApproveListingRequest)
}

func (a *app) listingDeny(ctx context.Context, args []string) error {
	return a.listingDecision(ctx, "listings deny", args, a.listings.DenyListingRequest)
}

func (a *app) listingDecision(ctx context.Context, name string, args []string,
	decide func(ctx context.Context, id, message string) (*domain.CarListingRequest, error)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	message := fs.String("message", "", "message shown to the owner")
	id, err := parse(fs, args, true)
	if err != nil {
		return err
	}
	req, err := decide(ctx, id, *message)
	if err != nil {
		return err
	}
	return a.print(req)
}

func (a *app) listingMessage(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("listings message", flag.ContinueOnError)
	as := fs.String("as", string(domain.RoleUser), "sender role: user or admin")
	body := fs.String("body", "", "message text")
	id, err := parse(fs, args, true)
	if err != nil {
		return err
	}
	req, err := a.listings.AppendMessage(ctx, id, domain.SenderRole(*as), *body)
	if err != nil {
		return err
	}
	return a.print(req)
}

func (a *app) listingRead(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("listings read", flag.ContinueOnError)
	as := fs.String("as", string(domain.RoleUser), "viewer role: user or admin")
	id, err := parse(fs, args, true)
	if err != nil {
		return err
	}
	req, err := a.listings.MarkRead(ctx, id, domain.SenderRole(*as))
	if err != nil {
		return err
	}
	return a.print(req)
}

func (a *app) listingList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("listings list", flag.ContinueOnError)
	status := fs.String("status", string(domain.FilterAll), "pending, approved, denied or all")
	owner := fs.String("owner", "", "only requests by this owner email")
	count := fs.Bool("count", false, "print the number of matching requests only")
	if _, err := parse(fs, args, false); err != nil {
		return err
	}
	filter, err := domain.ParseStatusFilter(*status)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if *count && *owner == "" {
		n, err := a.listings.CountListingRequests(ctx, filter)
		if err != nil {
			return err
		}
		return a.print(map[string]any{"status": filter, "count": n})
	}

	var reqs []domain.CarListingRequest
	if *owner != "" {
		reqs, err = a.listings.ListListingRequestsByOwner(ctx, *owner)
		reqs = filterStatus(reqs, filter, func(r domain.CarListingRequest) domain.RequestStatus { return r.Status })
	} else {
		reqs, err = a.listings.ListListingRequests(ctx, filter)
	}
	if err != nil {
		return err
	}
	if *count {
		return a.print(map[string]any{"status": filter, "count": len(reqs)})
	}
	return a.print(reqs)
}

func (a *app) listingShow(ctx context.Context, args []string) error {
	id, err := parse(flag.NewFlagSet("listings show", flag.ContinueOnError), args, true)
	if err != nil {
		return err
	}
	req, err := a.listings.GetListingRequest(ctx, id)
	if err != nil {
		return err
	}
	return a.print(req)
}

func (a *app) listingUnread(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("listings unread", flag.ContinueOnError)
	as := fs.String("as", string(domain.RoleUser), "viewer role: user or admin")
	if _, err := parse(fs, args, false); err != nil {
		return err
	}
	n, err := a.listings.UnreadCount(ctx, domain.SenderRole(*as))
	if err != nil {
		return err
	}
	return a.print(map[string]any{"role": *as, "unread": n})
}
