package guard

import (
	"log/slog"
	"testing"
	"time"

	"github.com/ngcs-mobile/courtclient/internal/client/session"
	"github.com/ngcs-mobile/courtclient/internal/logging"
	"github.com/stretchr/testify/require"
)

type recordingNav struct {
	reasons []string
	urls    []string
}

func (n *recordingNav) NavigateToLogin(reason, returnURL string) {
	n.reasons = append(n.reasons, reason)
	n.urls = append(n.urls, returnURL)
}

func TestAllow_Authenticated(t *testing.T) {
	sessions := session.NewManager(nil, logging.NewSlogLogger(slog.New(slog.DiscardHandler)))
	nav := &recordingNav{}
	g := New(sessions, nav)

	sessions.Set(true, &session.UserInfo{Username: "dana", LoginTime: time.Now()})

	require.True(t, g.Allow("/home"))
	require.Empty(t, nav.reasons)
}

func TestAllow_UnauthenticatedRedirects(t *testing.T) {
	sessions := session.NewManager(nil, logging.NewSlogLogger(slog.New(slog.DiscardHandler)))
	nav := &recordingNav{}
	g := New(sessions, nav)

	require.False(t, g.Allow("/home"))
	require.Equal(t, []string{""}, nav.reasons)
	require.Equal(t, []string{"/home"}, nav.urls)
}
