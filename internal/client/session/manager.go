// Package session holds the in-memory authentication state and keeps it in
// sync with the device preferences store. The manager is the single writer
// of session state; the route guard, the auth transport and the CLI observe
// it through Current and Subscribe.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ngcs-mobile/courtclient/internal/client/prefs"
	"github.com/ngcs-mobile/courtclient/internal/logging"
)

// Preference keys of the persisted auth record. The three keys are written
// and cleared together as a logical unit but are not transactionally atomic.
const (
	keyUsername      = "NGCSuserName"
	keyLoginTime     = "NGCSloginTime"
	keyAuthenticated = "NGCSisAuthenticated"
)

// UserInfo identifies the currently logged-in user.
type UserInfo struct {
	Username  string
	LoginTime time.Time
}

// State is a snapshot of the session. Invariant: User is non-nil iff
// Authenticated is true.
type State struct {
	Authenticated bool
	User          *UserInfo
}

// Manager owns the session state cell.
type Manager struct {
	store prefs.Store
	log   logging.Logger

	mu    sync.Mutex
	state State
	subs  []func(State)
}

func NewManager(store prefs.Store, log logging.Logger) *Manager {
	return &Manager{store: store, log: log.With("component", "session")}
}

// Set replaces the session state in a single assignment and notifies all
// subscribers with the new value. A nil user forces the unauthenticated
// state so the State invariant cannot be violated by callers.
func (m *Manager) Set(authenticated bool, user *UserInfo) {
	if user == nil {
		authenticated = false
	}
	if !authenticated {
		user = nil
	}

	m.mu.Lock()
	m.state = State{Authenticated: authenticated, User: user}
	state := m.state
	subs := make([]func(State), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// Subscribe registers fn to be called after every state change.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Current returns a snapshot of the session state.
func (m *Manager) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Restore rebuilds the session from the persisted auth record at startup.
// The session becomes authenticated only when the stored flag reads exactly
// "true" and a username is present; a missing login time falls back to the
// current time. Any store read failure degrades to the unauthenticated state
// and clears the persisted record.
func (m *Manager) Restore(ctx context.Context) {
	authFlag, _, err := m.store.Get(ctx, keyAuthenticated)
	if err == nil {
		var username string
		username, _, err = m.store.Get(ctx, keyUsername)
		if err == nil {
			var loginTime string
			loginTime, _, err = m.store.Get(ctx, keyLoginTime)
			if err == nil {
				if authFlag != "true" || username == "" {
					return
				}
				parsed, perr := time.Parse(time.RFC3339, loginTime)
				if perr != nil {
					parsed = time.Now()
				}
				m.Set(true, &UserInfo{Username: username, LoginTime: parsed})
				m.log.Info(ctx, "authentication state restored from storage", "username", username)
				return
			}
		}
	}

	m.log.Error(ctx, "failed to restore auth state", "error", err)
	if cerr := m.ClearPersisted(ctx); cerr != nil {
		m.log.Error(ctx, "failed to clear persisted auth record", "error", cerr)
	}
}

// Persist writes the three auth record keys. The writes are issued
// concurrently and joined; a failed write does not stop the others.
func (m *Manager) Persist(ctx context.Context, user UserInfo) error {
	writes := []struct{ key, value string }{
		{keyUsername, user.Username},
		{keyLoginTime, user.LoginTime.Format(time.RFC3339)},
		{keyAuthenticated, "true"},
	}

	errs := make([]error, len(writes))
	var wg sync.WaitGroup
	for i, w := range writes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = m.store.Set(ctx, w.key, w.value)
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

// ClearPersisted removes the three auth record keys, attempting all of them
// regardless of individual failures.
func (m *Manager) ClearPersisted(ctx context.Context) error {
	keys := []string{keyUsername, keyLoginTime, keyAuthenticated}

	errs := make([]error, len(keys))
	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = m.store.Delete(ctx, key)
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

// ClearAuth resets the session to unauthenticated, in memory and on disk.
// Storage failures are logged and swallowed: a clear must never leave the
// in-memory state authenticated.
func (m *Manager) ClearAuth(ctx context.Context) {
	m.Set(false, nil)
	if err := m.ClearPersisted(ctx); err != nil {
		m.log.Error(ctx, "failed to clear persisted auth record", "error", err)
	}
}

// StoredUsername reads the persisted username, used for login autofill and
// logout fallback. Absent key yields an empty string.
func (m *Manager) StoredUsername(ctx context.Context) (string, error) {
	username, _, err := m.store.Get(ctx, keyUsername)
	return username, err
}
