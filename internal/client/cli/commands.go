package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ngcs-mobile/courtclient/internal/client/services"
	"github.com/ngcs-mobile/courtclient/internal/common"
)

func (a *App) Status(ctx context.Context) error {
	state := a.sessions.Current()
	if !state.Authenticated {
		fmt.Fprintln(a.out, "not logged in")
	} else {
		fmt.Fprintf(a.out, "logged in as %s since %s\n",
			state.User.Username, state.User.LoginTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(a.out, "screen: %s, policy: %s\n", a.router.Current(), a.policy.StatusString(ctx))
	return nil
}

// CheckVersion drives the app-version gate: fetches the server version and
// reports whether this build may proceed.
func (a *App) CheckVersion(ctx context.Context) error {
	info, err := a.data.CheckVersion(ctx)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNoNetwork):
			fmt.Fprintln(a.out, services.MsgNoNetwork)
		case errors.Is(err, common.ErrServerFault):
			fmt.Fprintln(a.out, services.MsgServerFault)
		default:
			fmt.Fprintln(a.out, services.MsgUnknown)
		}
		return err
	}

	if !a.data.Compatible(info) {
		fmt.Fprintln(a.out, services.MsgUpdateRequired)
		return nil
	}

	fmt.Fprintf(a.out, "server version %s (min compatible %v) - ok\n",
		info.ServerVersion, info.MinCompatibleServerVersion)
	return nil
}

func (a *App) Policy(ctx context.Context) error {
	fmt.Fprintf(a.out, "user policy: %s\n", a.policy.StatusString(ctx))
	return nil
}

func (a *App) AcceptPolicy(ctx context.Context) error {
	if err := a.policy.SetAccepted(ctx); err != nil {
		fmt.Fprintln(a.out, services.MsgUnknown)
		return err
	}
	fmt.Fprintln(a.out, "user policy accepted")
	return nil
}

func (a *App) SendDeviceID(ctx context.Context, imei, iccid string) error {
	if err := a.auth.SendDeviceID(ctx, imei, iccid); err != nil {
		fmt.Fprintln(a.out, services.MsgUnknown)
		return err
	}
	fmt.Fprintln(a.out, "device id applied")
	return nil
}

func (a *App) Unread(ctx context.Context) error {
	counts, err := a.data.UnreadCounts(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrReauthRequired) {
			fmt.Fprintln(a.out, services.MsgUnknown)
		}
		return err
	}
	fmt.Fprintf(a.out, "unread counts: %v\n", counts)
	return nil
}

// Home attempts to open the home screen through the route guard.
func (a *App) Home(ctx context.Context) error {
	if !a.guard.Allow("/home") {
		fmt.Fprintln(a.out, "login required")
		return nil
	}
	a.router.Goto("home")
	fmt.Fprintln(a.out, "home screen")
	return nil
}
