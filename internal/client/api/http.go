package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ngcs-mobile/courtclient/internal/common"
	"github.com/ngcs-mobile/courtclient/internal/logging"
)

// Endpoint paths, relative to the configured base URL.
const (
	EndpointLogin         = "LoginService.asmx/Login"
	EndpointLogout        = "LoginService.asmx/LogOut"
	EndpointApplyDeviceID = "DeviceIdService.asmx/ApplyDeviceId"
	EndpointGetVersion    = "ServerVersionService.asmx/GetVersion"
	EndpointUnreadCounts  = "mDataProvider.asmx/GetUnreadNumbers"
)

const maxResponseBody = 1 << 20

var _ Client = (*HTTPClient)(nil)

// HTTPClient talks to the remote endpoints over HTTP with a shared cookie
// jar, since the backend tracks the authenticated session in a cookie.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the given base URL. transport is
// typically an *AuthTransport; nil falls back to the default transport.
func NewHTTPClient(baseURL string, transport http.RoundTripper, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &HTTPClient{
		baseURL: baseURL,
		hc: &http.Client{
			Jar:       jar,
			Transport: transport,
			Timeout:   timeout,
		},
		log: log.With("component", "api"),
	}, nil
}

// post sends payload to the endpoint and returns the raw response body.
// Failures to obtain a response map to StatusError{Code: 0}; non-200
// statuses map to a StatusError carrying the auth challenge header.
func (c *HTTPClient) post(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set(common.RequestedWithHeader, common.RequestedWithValue)

	requestID := uuid.NewString()
	c.log.Debug(ctx, "sending request", "endpoint", endpoint, "request_id", requestID)

	resp, err := c.hc.Do(req)
	if err != nil {
		// The auth transport suppresses 401/419 responses; pass its
		// sentinel through untouched so callers see the real cause.
		if errors.Is(err, common.ErrReauthRequired) {
			return nil, err
		}
		c.log.Warn(ctx, "request failed without response",
			"endpoint", endpoint, "request_id", requestID, "error", err)
		return nil, &StatusError{Code: 0, Endpoint: endpoint}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", endpoint, err)
	}

	c.log.Debug(ctx, "response received",
		"endpoint", endpoint, "request_id", requestID, "status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{
			Code:          resp.StatusCode,
			Status:        resp.Status,
			AuthChallenge: resp.Header.Get(common.AuthChallengeHeader),
			Endpoint:      endpoint,
		}
	}

	return data, nil
}

// Login posts the credentials and reports whether the server accepted them.
// A well-formed negative response is (false, nil).
func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (bool, error) {
	body, err := c.post(ctx, EndpointLogin, req)
	if err != nil {
		return false, err
	}

	payload, err := decodeEnvelope(body)
	if err != nil {
		return false, fmt.Errorf("%s: %w", EndpointLogin, err)
	}

	var accepted bool
	if err := json.Unmarshal(payload, &accepted); err != nil {
		return false, fmt.Errorf("%s: %w: %v", EndpointLogin, common.ErrBadEnvelope, err)
	}
	return accepted, nil
}

// Logout notifies the server; the response body is ignored.
func (c *HTTPClient) Logout(ctx context.Context, username string) error {
	_, err := c.post(ctx, EndpointLogout, map[string]string{"username": username})
	return err
}

// ApplyDeviceID registers the device identifiers; the response body is
// ignored.
func (c *HTTPClient) ApplyDeviceID(ctx context.Context, imei, iccid string) error {
	_, err := c.post(ctx, EndpointApplyDeviceID, map[string]string{"imei": imei, "iccid": iccid})
	return err
}

// GetVersion fetches the server version descriptor.
func (c *HTTPClient) GetVersion(ctx context.Context) (VersionInfo, error) {
	body, err := c.post(ctx, EndpointGetVersion, map[string]string{})
	if err != nil {
		return VersionInfo{}, err
	}

	payload, err := decodeEnvelope(body)
	if err != nil {
		return VersionInfo{}, fmt.Errorf("%s: %w", EndpointGetVersion, err)
	}
	if string(payload) == "null" {
		return VersionInfo{}, fmt.Errorf("%s: %w: null payload", EndpointGetVersion, common.ErrBadEnvelope)
	}

	var info VersionInfo
	if err := json.Unmarshal(payload, &info); err != nil {
		return VersionInfo{}, fmt.Errorf("%s: %w: %v", EndpointGetVersion, common.ErrBadEnvelope, err)
	}
	return info, nil
}

// UnreadCounts fetches the per-section unread message counters for the home
// screen badges. A null payload yields an empty slice.
func (c *HTTPClient) UnreadCounts(ctx context.Context) ([]int, error) {
	body, err := c.post(ctx, EndpointUnreadCounts, map[string]string{})
	if err != nil {
		return nil, err
	}

	payload, err := decodeEnvelope(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EndpointUnreadCounts, err)
	}

	var counts []int
	if err := json.Unmarshal(payload, &counts); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", EndpointUnreadCounts, common.ErrBadEnvelope, err)
	}
	if counts == nil {
		counts = []int{}
	}
	return counts, nil
}
