package main

import (
	"context"
	"flag"
	"fmt"

	"carrental-portal/internal/domain"
)

func (a *app) rentalSubmit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rentals submit", flag.ContinueOnError)
	var in domain.RentalRequestInput
	fs.StringVar(&in.VehicleID, "vehicle", "", "vehicle id")
	fs.StringVar(&in.RenterName, "name", "", "renter name")
	fs.StringVar(&in.RenterEmail, "email", "", "renter email")
	fs.StringVar(&in.RenterPhone, "phone", "", "renter phone")
	fs.StringVar(&in.StartDate, "start", "", "start date, YYYY-MM-DD")
	fs.StringVar(&in.EndDate, "end", "", "end date, YYYY-MM-DD")
	fs.StringVar(&in.Notes, "notes", "", "notes for the admin")
	if _, err := parse(fs, args, false); err != nil {
		return err
	}
	req, err := a.rentals.SubmitRentalRequest(ctx, in)
	if err != nil {
		return err
	}
	return a.print(req)
}

func (a *app) rentalApprove(ctx context.Context, args []string) error {
	return a.rentalDecision(ctx, "rentals approve", args, a.rentals.ApproveRentalRequest)
}

func (a *app) rentalDeny(ctx context.Context, args []string) error {
	return a.rentalDecision(ctx, "rentals deny", args, a.rentals.DenyRentalRequest)
}

func (a *app) rentalDecision(ctx context.Context, name string, args []string,
	decide func(ctx context.Context, id, message string) (*domain.RentalRequest, error)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	message := fs.String("message", "", "message shown to the renter")
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

func (a *app) rentalCancel(ctx context.Context, args []string) error {
	id, err := parse(flag.NewFlagSet("rentals cancel", flag.ContinueOnError), args, true)
	if err != nil {
		return err
	}
	req, err := a.rentals.CancelRentalRequest(ctx, id)
	if err != nil {
		return err
	}
	return a.print(req)
}

func (a *app) rentalMessage(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rentals message", flag.ContinueOnError)
	as := fs.String("as", string(domain.RoleUser), "sender role: user or admin")
	body := fs.String("body", "", "message text")
	id, err := parse(fs, args, true)
	if err != nil {
		return err
	}
	req, err := a.rentals.AppendMessage(ctx, id, domain.SenderRole(*as), *body)
	if err != nil {
		return err
	}
	return a.print(req)
}

func (a *app) rentalRead(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rentals read", flag.ContinueOnError)
	as := fs.String("as", string(domain.RoleUser), "viewer role: user or admin")
	id, err := parse(fs, args, true)
	if err != nil {
		return err
	}
	req, err := a.rentals.MarkRead(ctx, id, domain.SenderRole(*as))
	if err != nil {
		return err
	}
	return a.print(req)
}

func (a *app) rentalList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rentals list", flag.ContinueOnError)
	status := fs.String("status", string(domain.FilterAll), "pending, approved, denied, cancelled or all")
	renter := fs.String("renter", "", "only requests by this renter email")
	count := fs.Bool("count", false, "print the number of matching requests only")
	if _, err := parse(fs, args, false); err != nil {
		return err
	}
	filter, err := domain.ParseStatusFilter(*status)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if *count && *renter == "" {
		n, err := a.rentals.CountRentalRequests(ctx, filter)
		if err != nil {
			return err
		}
		return a.print(map[string]any{"status": filter, "count": n})
	}

	var reqs []domain.RentalRequest
	if *renter != "" {
		reqs, err = a.rentals.ListRentalRequestsByRenter(ctx, *renter)
		reqs = filterStatus(reqs, filter, func(r domain.RentalRequest) domain.RequestStatus { return r.Status })
	} else {
		reqs, err = a.rentals.ListRentalRequests(ctx, filter)
	}
	if err != nil {
		return err
	}
	if *count {
		return a.print(map[string]any{"status": filter, "count": len(reqs)})
	}
	return a.print(reqs)
}

func (a *app) rentalShow(ctx context.Context, args []string) error {
	id, err := parse(flag.NewFlagSet("rentals show", flag.ContinueOnError), args, true)
	if err != nil {
		return err
	}
	req, err := a.rentals.GetRentalRequest(ctx, id)
	if err != nil {
		return err
	}
	return a.print(req)
}

func (a *app) rentalUnread(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rentals unread", flag.ContinueOnError)
	as := fs.String("as", string(domain.RoleUser), "viewer role: user or admin")
	if _, err := parse(fs, args, false); err != nil {
		return err
	}
	n, err := a.rentals.UnreadCount(ctx, domain.SenderRole(*as))
	if err != nil {
		return err
	}
	return a.print(map[string]any{"role": *as, "unread": n})
}

func filterStatus[T any](items []T, filter domain.StatusFilter, status func(T) domain.RequestStatus) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if filter.Matches(status(it)) {
			out = append(out, it)
		}
	}
	return out
}
