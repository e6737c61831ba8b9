package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ngcs-mobile/courtclient/internal/common"
	"github.com/ngcs-mobile/courtclient/internal/logging"
)

// ReauthCategory names the kind of re-authentication a failed request
// demands, derived from the status code and the auth challenge header.
type ReauthCategory string

const (
	CategoryLogin           ReauthCategory = "login"
	CategoryLoginExpired    ReauthCategory = "login-expired"
	CategoryPasscode        ReauthCategory = "passcode"
	CategoryDeviceID        ReauthCategory = "deviceid"
	CategoryDeviceIDExpired ReauthCategory = "deviceid-expired"
)

// CategoryFor maps (status, challenge header value) onto a ReauthCategory.
func CategoryFor(status int, challenge string) ReauthCategory {
	switch status {
	case http.StatusUnauthorized:
		switch challenge {
		case "passcode":
			return CategoryPasscode
		case "deviceid":
			return CategoryDeviceID
		default:
			return CategoryLogin
		}
	case common.StatusAuthTimeout:
		switch challenge {
		case "passcode":
			// an expired passcode still routes to the passcode view
			return CategoryPasscode
		case "deviceid":
			return CategoryDeviceIDExpired
		default:
			return CategoryLoginExpired
		}
	}
	return CategoryLogin
}

// skipEndpoints are unauthenticated endpoints excluded from header injection
// and from 401/419 handling, matched by substring on the request path.
var skipEndpoints = []string{"Login", "GetVersion", "SendSms", "ApplyPasscode"}

// SessionClearer resets the authenticated state, in memory and on disk.
// *session.Manager satisfies it.
type SessionClearer interface {
	ClearAuth(ctx context.Context)
}

// DefaultReauthCooldown is the window during which repeated 401/419
// failures collapse to a single redirect.
const DefaultReauthCooldown = time.Second

// AuthTransport is an http.RoundTripper that adds the identifying header to
// every authenticated request and converts 401/419 responses into a session
// clear plus a navigation redirect. The failed request is suppressed (the
// caller sees common.ErrReauthRequired) and is not retried. A burst of
// failures within the cooldown window triggers exactly one redirect.
type AuthTransport struct {
	Base     http.RoundTripper
	Sessions SessionClearer
	Nav      Navigator
	Log      logging.Logger
	Cooldown time.Duration

	// now is a test seam.
	now func() time.Time

	mu         sync.Mutex
	holdOffEnd time.Time
}

func NewAuthTransport(base http.RoundTripper, sessions SessionClearer, nav Navigator, log logging.Logger) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &AuthTransport{
		Base:     base,
		Sessions: sessions,
		Nav:      nav,
		Log:      log.With("component", "auth-transport"),
		Cooldown: DefaultReauthCooldown,
		now:      time.Now,
	}
}

func shouldSkip(path string) bool {
	for _, endpoint := range skipEndpoints {
		if strings.Contains(path, endpoint) {
			return true
		}
	}
	return false
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if shouldSkip(req.URL.Path) {
		return t.Base.RoundTrip(req)
	}

	authReq := req.Clone(req.Context())
	authReq.Header.Set(common.RequestedWithHeader, common.RequestedWithValue)

	resp, err := t.Base.RoundTrip(authReq)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != common.StatusAuthTimeout {
		return resp, nil
	}

	category := CategoryFor(resp.StatusCode, resp.Header.Get(common.AuthChallengeHeader))
	t.Log.Warn(req.Context(), "authentication error detected",
		"status", resp.StatusCode, "url", req.URL.String(), "category", string(category))
	resp.Body.Close()

	if t.beginHoldOff() {
		t.Sessions.ClearAuth(req.Context())
		t.Nav.NavigateToLogin(string(category), req.URL.RequestURI())
	}

	return nil, fmt.Errorf("%s: %w", req.URL.Path, common.ErrReauthRequired)
}

// beginHoldOff reports whether this failure should trigger the redirect,
// and if so starts the cooldown window.
func (t *AuthTransport) beginHoldOff() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if now.Before(t.holdOffEnd) {
		return false
	}
	cooldown := t.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultReauthCooldown
	}
	t.holdOffEnd = now.Add(cooldown)
	return true
}
