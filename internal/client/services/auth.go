// Package services contains the application services of the court client.
// This file defines the login orchestrator: the login/logout request
// lifecycle, fault classification into user-facing messages, and the device
// registration handle.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ngcs-mobile/courtclient/internal/client/api"
	"github.com/ngcs-mobile/courtclient/internal/client/device"
	"github.com/ngcs-mobile/courtclient/internal/client/prefs"
	"github.com/ngcs-mobile/courtclient/internal/client/session"
	"github.com/ngcs-mobile/courtclient/internal/common"
	"github.com/ngcs-mobile/courtclient/internal/logging"
)

// keyRegisterHandle stores the per-install device registration handle.
const keyRegisterHandle = "NGCSregisterHandle"

// Credentials is the transient login input. Never persisted.
type Credentials struct {
	Username       string
	Password       string
	RegisterHandle string
}

// AuthService drives the authentication lifecycle.
//
// Contract:
//   - Login: authenticate against the server, update session state and
//     persisted record on success, surface a localized message on any
//     outcome. Returns whether the server accepted the credentials; the
//     error (when non-nil) carries the underlying fault for callers that
//     want to branch, but the user feedback has already been presented.
//   - Logout: best-effort remote logout, unconditional local cleanup,
//     always ends at the login entry point.
//   - SendDeviceID: forward the device identifiers to the server.
type AuthService interface {
	Login(ctx context.Context, creds Credentials) (bool, error)
	Logout(ctx context.Context, username string)
	SendDeviceID(ctx context.Context, imei, iccid string) error
}

type authService struct {
	client     api.Client
	sessions   *session.Manager
	store      prefs.Store
	notifier   Notifier
	nav        api.Navigator
	appVersion string
	log        logging.Logger

	// test seams
	deviceInfo func() (platform, osVersion string)
	now        func() time.Time
}

// NewAuthService constructs the orchestrator bound to the given
// collaborators. appVersion is reported to the server on login.
func NewAuthService(client api.Client, sessions *session.Manager, store prefs.Store,
	notifier Notifier, nav api.Navigator, appVersion string, log logging.Logger) AuthService {
	return &authService{
		client:     client,
		sessions:   sessions,
		store:      store,
		notifier:   notifier,
		nav:        nav,
		appVersion: appVersion,
		log:        log.With("component", "auth"),
		deviceInfo: device.Info,
		now:        time.Now,
	}
}

func (a *authService) Login(ctx context.Context, creds Credentials) (bool, error) {
	a.log.Info(ctx, "login attempt", "username", creds.Username)

	// best-effort device metadata; blank values never fail the call
	platform, osVersion := a.deviceInfo()

	handle := creds.RegisterHandle
	if handle == "" {
		handle = a.registerHandle(ctx)
	}

	accepted, err := a.client.Login(ctx, api.LoginRequest{
		Username:        creds.Username,
		Password:        creds.Password,
		RegisterHandle:  handle,
		DeviceOp:        platform,
		DeviceOpVersion: osVersion,
		AppVersion:      a.appVersion,
	})
	if err != nil {
		a.log.Error(ctx, "login request failed", "username", creds.Username, "error", err)
		msg, severity := faultMessage(err)
		a.notifier.Notify(ctx, msg, severity)
		return false, err
	}

	if !accepted {
		a.log.Warn(ctx, "login failed - incorrect credentials", "username", creds.Username)
		a.notifier.Notify(ctx, MsgBadCredentials, SeverityDanger)
		return false, nil
	}

	user := session.UserInfo{Username: creds.Username, LoginTime: a.now()}
	if err := a.sessions.Persist(ctx, user); err != nil {
		a.log.Error(ctx, "failed to persist auth record", "error", err)
		a.notifier.Notify(ctx, MsgUnknown, SeverityDanger)
		return false, err
	}
	a.sessions.Set(true, &user)

	a.log.Info(ctx, "login successful", "username", creds.Username)
	a.notifier.Notify(ctx, MsgLoginSuccess, SeveritySuccess)
	return true, nil
}

func (a *authService) Logout(ctx context.Context, username string) {
	if username == "" {
		stored, err := a.sessions.StoredUsername(ctx)
		if err != nil {
			a.log.Warn(ctx, "failed to read stored username", "error", err)
		}
		username = stored
	}

	a.log.Info(ctx, "logout attempt", "username", username)

	// remote logout is best-effort; local cleanup happens regardless
	if username != "" {
		if err := a.client.Logout(ctx, username); err != nil {
			a.log.Warn(ctx, "logout API call failed, continuing with local cleanup", "error", err)
		}
	}

	a.sessions.ClearAuth(ctx)
	a.nav.NavigateToLogin("", "")

	a.log.Info(ctx, "logout completed", "username", username)
	a.notifier.Notify(ctx, MsgLogoutSuccess, SeveritySuccess)
}

func (a *authService) SendDeviceID(ctx context.Context, imei, iccid string) error {
	if err := a.client.ApplyDeviceID(ctx, imei, iccid); err != nil {
		a.log.Error(ctx, "apply device id failed", "error", err)
		return err
	}
	return nil
}

// registerHandle returns the persisted per-install registration handle,
// minting one on first use. Storage failures degrade to a blank handle.
func (a *authService) registerHandle(ctx context.Context) string {
	handle, ok, err := a.store.Get(ctx, keyRegisterHandle)
	if err != nil {
		a.log.Warn(ctx, "failed to read register handle", "error", err)
		return ""
	}
	if ok && handle != "" {
		return handle
	}

	handle = uuid.NewString()
	if err := a.store.Set(ctx, keyRegisterHandle, handle); err != nil {
		a.log.Warn(ctx, "failed to persist register handle", "error", err)
		return ""
	}
	return handle
}

// faultMessage converts a classified fault into the localized message and
// severity shown to the user.
func faultMessage(err error) (string, Severity) {
	var statusErr *api.StatusError
	switch {
	case errors.Is(err, common.ErrConfigFault):
		return MsgConfigFault, SeverityDanger
	case errors.Is(err, common.ErrAuthExpired):
		return MsgSessionExpired, SeverityWarning
	case errors.Is(err, common.ErrNoNetwork):
		return MsgNoNetwork, SeverityDanger
	case errors.Is(err, common.ErrServerFault):
		return MsgServerFault, SeverityDanger
	case errors.As(err, &statusErr):
		return fmt.Sprintf(MsgServerStatusFmt, statusErr.Code), SeverityDanger
	default:
		return MsgUnknown, SeverityDanger
	}
}
