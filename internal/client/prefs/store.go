// Package prefs implements the device-local preferences store: a small
// string key-value table backed by sqlite. It holds the persisted auth
// record, the policy-acceptance flag, and the device registration handle.
package prefs

import "context"

// Store is the persistence contract used by the session manager and the
// application services. Get reports (value, present, error); an absent key
// is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
