package cli

import (
	"context"
	"fmt"

	"github.com/ngcs-mobile/courtclient/internal/client/services"
)

func (a *App) Login(ctx context.Context) error {
	stored, err := a.sessions.StoredUsername(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to read stored username", "error", err)
	}

	prompt := "Enter username"
	if stored != "" {
		prompt = fmt.Sprintf("Enter username [%s]", stored)
	}
	username, err := GetSimpleText(a.in, prompt, a.out)
	if err != nil {
		return err
	}
	if username == "" {
		username = stored
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	ok, err := a.auth.Login(ctx, services.Credentials{Username: username, Password: string(password)})
	if ok {
		a.router.Goto("home")
	}
	// faults were already presented to the user by the orchestrator
	_ = err
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx, "")
	return nil
}
