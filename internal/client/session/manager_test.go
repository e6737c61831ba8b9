package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ngcs-mobile/courtclient/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory prefs.Store with per-operation error injection.
type fakeStore struct {
	mu     sync.Mutex
	data   map[string]string
	getErr map[string]error
	setErr error
	delErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}, getErr: map[string]error{}}
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.getErr[key]; err != nil {
		return "", false, err
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.data, key)
	return nil
}

func (f *fakeStore) List(ctx context.Context) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.data))
	for k, v := range f.data {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = map[string]string{}
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func newManager(t *testing.T) (*Manager, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return NewManager(store, testLogger()), store
}

func TestSet_NotifiesSubscribers(t *testing.T) {
	m, _ := newManager(t)

	var got []State
	m.Subscribe(func(s State) { got = append(got, s) })

	user := &UserInfo{Username: "dana", LoginTime: time.Now()}
	m.Set(true, user)
	m.Set(false, nil)

	require.Len(t, got, 2)
	require.True(t, got[0].Authenticated)
	require.Equal(t, "dana", got[0].User.Username)
	require.False(t, got[1].Authenticated)
	require.Nil(t, got[1].User)
}

func TestSet_EnforcesInvariant(t *testing.T) {
	m, _ := newManager(t)

	// authenticated without a user collapses to unauthenticated
	m.Set(true, nil)
	require.False(t, m.Current().Authenticated)
	require.Nil(t, m.Current().User)

	// a user on an unauthenticated state is dropped
	m.Set(false, &UserInfo{Username: "x"})
	require.Nil(t, m.Current().User)
}

func TestPersist_WritesThreeKeys(t *testing.T) {
	m, store := newManager(t)

	loginTime := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	err := m.Persist(context.Background(), UserInfo{Username: "dana", LoginTime: loginTime})
	require.NoError(t, err)

	require.Equal(t, "dana", store.data[keyUsername])
	require.Equal(t, "2026-02-03T10:00:00Z", store.data[keyLoginTime])
	require.Equal(t, "true", store.data[keyAuthenticated])
}

func TestRestore_RoundTripAfterPersist(t *testing.T) {
	m, store := newManager(t)

	loginTime := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	require.NoError(t, m.Persist(context.Background(), UserInfo{Username: "dana", LoginTime: loginTime}))

	// simulate a process restart: fresh manager over the same store
	restarted := NewManager(store, testLogger())
	restarted.Restore(context.Background())

	state := restarted.Current()
	require.True(t, state.Authenticated)
	require.Equal(t, "dana", state.User.Username)
	require.Equal(t, loginTime, state.User.LoginTime.UTC())
}

func TestRestore_RequiresExactTrueFlag(t *testing.T) {
	m, store := newManager(t)
	store.data[keyAuthenticated] = "TRUE"
	store.data[keyUsername] = "dana"

	m.Restore(context.Background())
	require.False(t, m.Current().Authenticated)
}

func TestRestore_RequiresUsername(t *testing.T) {
	m, store := newManager(t)
	store.data[keyAuthenticated] = "true"

	m.Restore(context.Background())
	require.False(t, m.Current().Authenticated)
}

func TestRestore_MissingLoginTimeFallsBackToNow(t *testing.T) {
	m, store := newManager(t)
	store.data[keyAuthenticated] = "true"
	store.data[keyUsername] = "dana"

	before := time.Now()
	m.Restore(context.Background())
	after := time.Now()

	state := m.Current()
	require.True(t, state.Authenticated)
	require.False(t, state.User.LoginTime.Before(before))
	require.False(t, state.User.LoginTime.After(after))
}

func TestRestore_ReadFailureClearsRecord(t *testing.T) {
	m, store := newManager(t)
	store.data[keyAuthenticated] = "true"
	store.data[keyUsername] = "dana"
	store.getErr[keyAuthenticated] = errors.New("storage corrupt")

	m.Restore(context.Background())

	require.False(t, m.Current().Authenticated)
	require.Empty(t, store.data)
}

func TestClearAuth_ResetsStateEvenWhenStorageFails(t *testing.T) {
	m, store := newManager(t)
	m.Set(true, &UserInfo{Username: "dana", LoginTime: time.Now()})
	store.delErr = errors.New("disk full")

	m.ClearAuth(context.Background())

	require.False(t, m.Current().Authenticated)
}

func TestStoredUsername(t *testing.T) {
	m, store := newManager(t)

	name, err := m.StoredUsername(context.Background())
	require.NoError(t, err)
	require.Equal(t, "", name)

	store.data[keyUsername] = "dana"
	name, err = m.StoredUsername(context.Background())
	require.NoError(t, err)
	require.Equal(t, "dana", name)
}
