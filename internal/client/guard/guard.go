// Package guard gates protected navigation on the current session state.
package guard

import (
	"github.com/ngcs-mobile/courtclient/internal/client/api"
	"github.com/ngcs-mobile/courtclient/internal/client/session"
)

// Guard is a synchronous predicate over the in-memory session flag; it
// performs no I/O.
type Guard struct {
	sessions *session.Manager
	nav      api.Navigator
}

func New(sessions *session.Manager, nav api.Navigator) *Guard {
	return &Guard{sessions: sessions, nav: nav}
}

// Allow reports whether navigation to target may proceed. When the session
// is unauthenticated it redirects to the login entry point and denies.
func (g *Guard) Allow(target string) bool {
	if g.sessions.Current().Authenticated {
		return true
	}
	g.nav.NavigateToLogin("", target)
	return false
}
