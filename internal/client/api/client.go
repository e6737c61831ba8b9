// Package api implements the client for the remote court-system endpoints:
// a legacy ASMX-style surface speaking JSON over HTTP with cookie-based
// authentication. Responses are wrapped in the {d: ...} envelope and may
// arrive double-encoded (a JSON string containing JSON).
package api

import "context"

// LoginRequest carries the fields of LoginService.asmx/Login. Field casing
// follows the legacy wire format.
type LoginRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	RegisterHandle  string `json:"registerHandle"`
	DeviceOp        string `json:"DeviceOp"`
	DeviceOpVersion string `json:"DeviceOpVersion"`
	AppVersion      string `json:"AppVersion"`
}

// VersionInfo is the payload of ServerVersionService.asmx/GetVersion.
type VersionInfo struct {
	ServerVersion              string  `json:"ServerVersion"`
	MinCompatibleServerVersion float64 `json:"MinCompatibleServerVersion"`
}

// Client is the remote endpoint surface consumed by the application
// services. Login reports (accepted, error): a well-formed negative response
// is (false, nil), not an error.
type Client interface {
	Login(ctx context.Context, req LoginRequest) (bool, error)
	Logout(ctx context.Context, username string) error
	ApplyDeviceID(ctx context.Context, imei, iccid string) error
	GetVersion(ctx context.Context) (VersionInfo, error)
	UnreadCounts(ctx context.Context) ([]int, error)
}

// Navigator redirects the user to the login entry point. The CLI implements
// it as a screen switch; the auth transport and the route guard use it.
type Navigator interface {
	NavigateToLogin(reason, returnURL string)
}
