package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if state := a.sessions.Current(); state.Authenticated {
		s = state.User.Username + " "
	}
	s += a.router.Current()
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Court mobile client (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "court %s> ", a.getStatus())
		line, readErr := a.in.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: status, home, unread, deviceid, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: version, policy, accept, login, exit")
			}

		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "status":
			_ = a.Status(ctx)
		case "version":
			_ = a.CheckVersion(ctx)
		case "policy":
			_ = a.Policy(ctx)
		case "accept":
			_ = a.AcceptPolicy(ctx)
		case "home":
			_ = a.Home(ctx)
		case "unread":
			_ = a.Unread(ctx)
		case "deviceid":
			if len(args) != 2 {
				fmt.Fprintln(a.out, "Usage: deviceid <imei> <iccid>")
				continue
			}
			_ = a.SendDeviceID(ctx, args[0], args[1])

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
