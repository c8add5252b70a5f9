package main

import (
	"context"
	"errors"
	"flag"

	"carrental-portal/internal/domain"
)

func (a *app) sessionLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("session login", flag.ContinueOnError)
	var user domain.CurrentUser
	var accountType string
	fs.StringVar(&user.Email, "email", "", "email address")
	fs.StringVar(&user.Name, "name", "", "display name")
	fs.StringVar(&user.Phone, "phone", "", "phone number")
	fs.StringVar(&accountType, "type", string(domain.AccountCustomer), "customer, owner or admin")
	if _, err := parse(fs, args, false); err != nil {
		return err
	}
	user.AccountType = domain.AccountType(accountType)

	signedIn, err := a.sessions.SignIn(ctx, user)
	if err != nil {
		return err
	}
	return a.print(signedIn)
}

func (a *app) sessionLogout(ctx context.Context, args []string) error {
	if _, err := parse(flag.NewFlagSet("session logout", flag.ContinueOnError), args, false); err != nil {
		return err
	}
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	return a.print(map[string]any{"signed_in": false})
}

func (a *app) sessionWhoami(ctx context.Context, args []string) error {
	if _, err := parse(flag.NewFlagSet("session whoami", flag.ContinueOnError), args, false); err != nil {
		return err
	}
	user, err := a.sessions.CurrentUser(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return a.print(map[string]any{"signed_in": false})
	}
	if err != nil {
		return err
	}
	return a.print(user)
}
