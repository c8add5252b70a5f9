package main

import (
	"context"
	"flag"

	"carrental-portal/internal/domain"
)

type vehicleFlags struct {
	make, model, category, transmission, fuel, color string
	location, features, description, images          string
	year, seats, mileage                             int
	daily, weekly, monthly                           int64
	available                                        bool
}

func (f *vehicleFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.make, "make", "", "manufacturer")
	fs.StringVar(&f.model, "model", "", "model name")
	fs.IntVar(&f.year, "year", 0, "model year")
	fs.StringVar(&f.category, "category", "", "category, e.g. SUV")
	fs.StringVar(&f.transmission, "transmission", "", "transmission")
	fs.StringVar(&f.fuel, "fuel", "", "fuel type")
	fs.IntVar(&f.seats, "seats", 0, "seat count")
	fs.StringVar(&f.color, "color", "", "color")
	fs.Int64Var(&f.daily, "daily", 0, "daily rate in minor currency units")
	fs.Int64Var(&f.weekly, "weekly", 0, "weekly rate in minor currency units")
	fs.Int64Var(&f.monthly, "monthly", 0, "monthly rate in minor currency units")
	fs.StringVar(&f.location, "location", "", "pickup location")
	fs.StringVar(&f.features, "features", "", "comma separated features")
	fs.StringVar(&f.description, "description", "", "free text description")
	fs.IntVar(&f.mileage, "mileage", 0, "mileage")
	fs.StringVar(&f.images, "images", "", "comma separated image references")
}

func (f *vehicleFlags) input() domain.VehicleInput {
	return domain.VehicleInput{
		Make:          f.make,
		Model:         f.model,
		Year:          f.year,
		Category:      f.category,
		Transmission:  f.transmission,
		FuelType:      f.fuel,
		Seats:         f.seats,
		Color:         f.color,
		PricePerDay:   f.daily,
		PricePerWeek:  f.weekly,
		PricePerMonth: f.monthly,
		Location:      f.location,
		Features:      splitList(f.features),
		Description:   f.description,
		Mileage:       f.mileage,
		Images:        splitList(f.images),
	}
}

// patch keeps only the flags given on the command line
func (f *vehicleFlags) patch(set map[string]bool) domain.VehiclePatch {
	var p domain.VehiclePatch
	if set["make"] {
		p.Make = &f.make
	}
	if set["model"] {
		p.Model = &f.model
	}
	if set["year"] {
		p.Year = &f.year
	}
	if set["category"] {
		p.Category = &f.category
	}
	if set["transmission"] {
		p.Transmission = &f.transmission
	}
	if set["fuel"] {
		p.FuelType = &f.fuel
	}
	if set["seats"] {
		p.Seats = &f.seats
	}
	if set["color"] {
		p.Color = &f.color
	}
	if set["daily"] {
		p.PricePerDay = &f.daily
	}
	if set["weekly"] {
		p.PricePerWeek = &f.weekly
	}
	if set["monthly"] {
		p.PricePerMonth = &f.monthly
	}
	if set["location"] {
		p.Location = &f.location
	}
	if set["features"] {
		p.Features = splitList(f.features)
	}
	if set["description"] {
		p.Description = &f.description
	}
	if set["mileage"] {
		p.Mileage = &f.mileage
	}
	if set["images"] {
		p.Images = splitList(f.images)
	}
	if set["available"] {
		p.Available = &f.available
	}
	return p
}

func (a *app) vehicleAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("vehicles add", flag.ContinueOnError)
	var f vehicleFlags
	f.register(fs)
	if _, err := parse(fs, args, false); err != nil {
		return err
	}
	in := f.input()
	if len(in.Images) == 0 && a.cfg.Inventory.DefaultImage != "" {
		in.Images = []string{a.cfg.Inventory.DefaultImage}
	}
	v, err := a.inventory.AddVehicle(ctx, in)
	if err != nil {
		return err
	}
	return a.print(v)
}

func (a *app) vehicleList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("vehicles list", flag.ContinueOnError)
	availableOnly := fs.Bool("available", false, "only vehicles offered to renters")
	if _, err := parse(fs, args, false); err != nil {
		return err
	}
	list := a.inventory.ListVehicles
	if *availableOnly {
		list = a.inventory.ListAvailable
	}
	vehicles, err := list(ctx)
	if err != nil {
		return err
	}
	return a.print(vehicles)
}

func (a *app) vehicleShow(ctx context.Context, args []string) error {
	id, err := parse(flag.NewFlagSet("vehicles show", flag.ContinueOnError), args, true)
	if err != nil {
		return err
	}
	v, err := a.inventory.GetVehicle(ctx, id)
	if err != nil {
		return err
	}
	return a.print(v)
}

func (a *app) vehicleUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("vehicles update", flag.ContinueOnError)
	var f vehicleFlags
	f.register(fs)
	fs.BoolVar(&f.available, "available", true, "offer the vehicle to renters")
	id, err := parse(fs, args, true)
	if err != nil {
		return err
	}
	v, err := a.inventory.UpdateVehicle(ctx, id, f.patch(visited(fs)))
	if err != nil {
		return err
	}
	return a.print(v)
}

func (a *app) vehicleToggle(ctx context.Context, args []string) error {
	id, err := parse(flag.NewFlagSet("vehicles toggle", flag.ContinueOnError), args, true)
	if err != nil {
		return err
	}
	v, err := a.inventory.ToggleAvailability(ctx, id)
	if err != nil {
		return err
	}
	return a.print(v)
}

func (a *app) vehicleDelete(ctx context.Context, args []string) error {
	id, err := parse(flag.NewFlagSet("vehicles delete", flag.ContinueOnError), args, true)
	if err != nil {
		return err
	}
	if err := a.inventory.DeleteVehicle(ctx, id); err != nil {
		return err
	}
	return a.print(map[string]any{"deleted": id})
}
