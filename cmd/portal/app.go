package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"carrental-portal/internal/config"
	"carrental-portal/internal/events"
	"carrental-portal/internal/repository/local"
	"carrental-portal/internal/service"
	"carrental-portal/internal/storage"
)

var errUsage = errors.New("usage")

// app is one view of the portal: its own cached store plus the services over it
type app struct {
	cfg       *config.Config
	store     *local.Store
	hub       *events.Hub
	inventory service.InventoryService
	rentals   service.RentalRequestService
	listings  service.ListingRequestService
	sessions  service.SessionService
	notifier  *service.DecisionNotifier
	out       io.Writer
}

func newApp(ctx context.Context, cfg *config.Config, adapter *storage.Adapter, out io.Writer, opts ...service.Option) *app {
	store := local.NewStore(ctx, adapter)
	hub := events.NewHub()

	emailService := service.NewEmailService(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)
	notifier := service.NewDecisionNotifier(emailService)
	hub.Subscribe(notifier.Handle)

	workflow := service.NewApprovalWorkflow(store.VehicleRepository, cfg.Inventory.DefaultImage, opts...)

	return &app{
		cfg:       cfg,
		store:     store,
		hub:       hub,
		inventory: service.NewInventoryService(store.VehicleRepository, hub, opts...),
		rentals: service.NewRentalRequestService(
			store.RentalRequestRepository,
			store.VehicleRepository,
			store.SessionRepository,
			hub,
			opts...,
		),
		listings: service.NewListingRequestService(
			store.ListingRequestRepository,
			store.SessionRepository,
			workflow,
			hub,
			opts...,
		),
		sessions: service.NewSessionService(store.SessionRepository, opts...),
		notifier: notifier,
		out:      out,
	}
}

type command func(ctx context.Context, args []string) error

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command group", errUsage)
	}
	if args[0] == "watch" {
		return a.watch(ctx, args[1:])
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: missing action for %q", errUsage, args[0])
	}

	groups := map[string]map[string]command{
		"vehicles": {
			"add":    a.vehicleAdd,
			"list":   a.vehicleList,
			"show":   a.vehicleShow,
			"update": a.vehicleUpdate,
			"toggle": a.vehicleToggle,
			"delete": a.vehicleDelete,
		},
		"rentals": {
			"submit":  a.rentalSubmit,
			"approve": a.rentalApprove,
			"deny":    a.rentalDeny,
			"cancel":  a.rentalCancel,
			"message": a.rentalMessage,
			"read":    a.rentalRead,
			"list":    a.rentalList,
			"show":    a.rentalShow,
			"unread":  a.rentalUnread,
		},
		"listings": {
			"submit":  a.listingSubmit,
			"approve": a.listingApprove,
			"deny":    a.listingDeny,
			"message": a.listingMessage,
			"read":    a.listingRead,
			"list":    a.listingList,
			"show":    a.listingShow,
			"unread":  a.listingUnread,
		},
		"session": {
			"login":  a.sessionLogin,
			"logout": a.sessionLogout,
			"whoami": a.sessionWhoami,
		},
	}

	actions, ok := groups[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command group %q", errUsage, args[0])
	}
	cmd, ok := actions[args[1]]
	if !ok {
		return fmt.Errorf("%w: unknown action %q for %s", errUsage, args[1], args[0])
	}
	return cmd(ctx, args[2:])
}

// print writes v to the output as indented JSON
func (a *app) print(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

// parse parses fs over args, accepting one positional id either before or
// after the flags. needID reports a usage error when no id is given.
func parse(fs *flag.FlagSet, args []string, needID bool) (string, error) {
	var id string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		id, args = args[0], args[1:]
	}
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	if id == "" {
		id = fs.Arg(0)
	}
	if needID && id == "" {
		return "", fmt.Errorf("%w: %s needs an id", errUsage, fs.Name())
	}
	return id, nil
}

// visited returns the names of the flags set on the command line
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
