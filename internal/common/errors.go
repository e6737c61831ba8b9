// Package common defines shared constants and sentinel errors used across
// the court client components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Negative remote result (well-formed response, login rejected).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Transport faults.
	ErrNoNetwork   = errors.New("no network connection")
	ErrServerFault = errors.New("server fault")

	// The endpoint answered 200 with an HTML document instead of the
	// expected envelope (misconfigured server or captive portal).
	ErrConfigFault = errors.New("server returned markup instead of payload")

	// Auth lifecycle.
	ErrAuthExpired    = errors.New("authentication expired")
	ErrReauthRequired = errors.New("re-authentication required")

	// Malformed or unparseable response body.
	ErrBadEnvelope = errors.New("invalid response envelope")
)
