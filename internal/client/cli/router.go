package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/ngcs-mobile/courtclient/internal/client/services"
)

// Router is the CLI stand-in for the app's navigation. It tracks the
// current screen and satisfies api.Navigator for the auth transport, the
// route guard and the orchestrator.
type Router struct {
	out io.Writer

	mu     sync.Mutex
	screen string
}

func NewRouter(out io.Writer) *Router {
	return &Router{out: out, screen: "login"}
}

func (r *Router) Goto(screen string) {
	r.mu.Lock()
	r.screen = screen
	r.mu.Unlock()
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.screen
}

// NavigateToLogin switches back to the login screen. A non-empty reason is
// reported to the user; an expired login additionally gets the localized
// re-login prompt, as the mobile UI does.
func (r *Router) NavigateToLogin(reason, returnURL string) {
	r.Goto("login")

	if reason == "" {
		return
	}
	fmt.Fprintf(r.out, "redirected to login (reason=%s, returnUrl=%s)\n", reason, returnURL)
	if reason == "login-expired" {
		fmt.Fprintln(r.out, services.MsgSessionExpired)
	}
}
