package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ngcs-mobile/courtclient/internal/common"
	"github.com/stretchr/testify/require"
)

// stubRoundTripper answers every request with a canned status and headers.
type stubRoundTripper struct {
	status    int
	challenge string

	mu       sync.Mutex
	requests []*http.Request
}

func (s *stubRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	header := http.Header{}
	if s.challenge != "" {
		header.Set(common.AuthChallengeHeader, s.challenge)
	}
	return &http.Response{
		StatusCode: s.status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}

type recordingNav struct {
	mu      sync.Mutex
	reasons []string
	urls    []string
}

func (n *recordingNav) NavigateToLogin(reason, returnURL string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reasons = append(n.reasons, reason)
	n.urls = append(n.urls, returnURL)
}

type recordingClearer struct {
	mu    sync.Mutex
	calls int
}

func (c *recordingClearer) ClearAuth(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
}

func newTransport(base *stubRoundTripper) (*AuthTransport, *recordingClearer, *recordingNav) {
	clearer := &recordingClearer{}
	nav := &recordingNav{}
	return NewAuthTransport(base, clearer, nav, testLogger()), clearer, nav
}

func doRequest(t *testing.T, rt http.RoundTripper, url string) (*http.Response, error) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, nil)
	require.NoError(t, err)
	return rt.RoundTrip(req)
}

func TestCategoryFor_Table(t *testing.T) {
	tests := []struct {
		status    int
		challenge string
		want      ReauthCategory
	}{
		{401, "passcode", CategoryPasscode},
		{401, "deviceid", CategoryDeviceID},
		{401, "", CategoryLogin},
		{401, "something-else", CategoryLogin},
		{419, "passcode", CategoryPasscode},
		{419, "deviceid", CategoryDeviceIDExpired},
		{419, "", CategoryLoginExpired},
		{419, "something-else", CategoryLoginExpired},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, CategoryFor(tt.status, tt.challenge),
			"status=%d challenge=%q", tt.status, tt.challenge)
	}
}

func TestRoundTrip_SkipsAllowListedEndpoints(t *testing.T) {
	base := &stubRoundTripper{status: http.StatusUnauthorized}
	transport, clearer, nav := newTransport(base)

	for _, path := range []string{
		"/LoginService.asmx/Login",
		"/ServerVersionService.asmx/GetVersion",
		"/SmsService.asmx/SendSms",
		"/PasscodeService.asmx/ApplyPasscode",
	} {
		resp, err := doRequest(t, transport, "http://backend"+path)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	}

	require.Zero(t, clearer.calls)
	require.Empty(t, nav.reasons)

	// allow-listed requests do not get the identifying header either
	for _, req := range base.requests {
		require.Empty(t, req.Header.Get(common.RequestedWithHeader))
	}
}

func TestRoundTrip_AddsIdentifyingHeader(t *testing.T) {
	base := &stubRoundTripper{status: http.StatusOK}
	transport, _, _ := newTransport(base)

	resp, err := doRequest(t, transport, "http://backend/mDataProvider.asmx/GetUnreadNumbers")
	require.NoError(t, err)
	resp.Body.Close()

	require.Len(t, base.requests, 1)
	require.Equal(t, common.RequestedWithValue, base.requests[0].Header.Get(common.RequestedWithHeader))
}

func TestRoundTrip_PassesThroughOtherFailures(t *testing.T) {
	base := &stubRoundTripper{status: http.StatusInternalServerError}
	transport, clearer, nav := newTransport(base)

	resp, err := doRequest(t, transport, "http://backend/mDataProvider.asmx/GetUnreadNumbers")
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()

	require.Zero(t, clearer.calls)
	require.Empty(t, nav.reasons)
}

func TestRoundTrip_AuthErrorClearsAndRedirects(t *testing.T) {
	base := &stubRoundTripper{status: common.StatusAuthTimeout, challenge: "deviceid"}
	transport, clearer, nav := newTransport(base)

	_, err := doRequest(t, transport, "http://backend/mDataProvider.asmx/GetUnreadNumbers?case=42")
	require.ErrorIs(t, err, common.ErrReauthRequired)

	require.Equal(t, 1, clearer.calls)
	require.Equal(t, []string{string(CategoryDeviceIDExpired)}, nav.reasons)
	require.Equal(t, []string{"/mDataProvider.asmx/GetUnreadNumbers?case=42"}, nav.urls)
}

func TestRoundTrip_DebouncesRedirectStorm(t *testing.T) {
	base := &stubRoundTripper{status: http.StatusUnauthorized}
	transport, clearer, nav := newTransport(base)

	current := time.Unix(1000, 0)
	transport.now = func() time.Time { return current }

	// two failures inside the window: one redirect
	_, err := doRequest(t, transport, "http://backend/a.asmx/First")
	require.ErrorIs(t, err, common.ErrReauthRequired)
	current = current.Add(300 * time.Millisecond)
	_, err = doRequest(t, transport, "http://backend/a.asmx/Second")
	require.ErrorIs(t, err, common.ErrReauthRequired)

	require.Equal(t, 1, clearer.calls)
	require.Len(t, nav.reasons, 1)

	// after the window expires the next failure redirects again
	current = current.Add(2 * time.Second)
	_, err = doRequest(t, transport, "http://backend/a.asmx/Third")
	require.ErrorIs(t, err, common.ErrReauthRequired)

	require.Equal(t, 2, clearer.calls)
	require.Len(t, nav.reasons, 2)
}
