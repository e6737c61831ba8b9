package services

import (
	"context"

	"github.com/ngcs-mobile/courtclient/internal/client/prefs"
	"github.com/ngcs-mobile/courtclient/internal/logging"
)

// keyAcceptedPolicy stores the user-policy acceptance flag. Independent of
// the auth record: set once by user action, never cleared on logout.
const keyAcceptedPolicy = "AcceptedUserPolicyValue"

// PolicyService tracks whether the user has accepted the user policy.
type PolicyService struct {
	store prefs.Store
	log   logging.Logger
}

func NewPolicyService(store prefs.Store, log logging.Logger) *PolicyService {
	return &PolicyService{store: store, log: log.With("component", "policy")}
}

// Accepted reports whether the policy was accepted: only the exact string
// "true" counts. Read failures degrade to false.
func (p *PolicyService) Accepted(ctx context.Context) bool {
	value, ok, err := p.store.Get(ctx, keyAcceptedPolicy)
	if err != nil {
		p.log.Error(ctx, "failed to check policy acceptance", "error", err)
		return false
	}
	return ok && value == "true"
}

func (p *PolicyService) SetAccepted(ctx context.Context) error {
	if err := p.store.Set(ctx, keyAcceptedPolicy, "true"); err != nil {
		p.log.Error(ctx, "failed to save policy acceptance", "error", err)
		return err
	}
	p.log.Info(ctx, "user policy acceptance saved")
	return nil
}

func (p *PolicyService) ClearAccepted(ctx context.Context) error {
	if err := p.store.Delete(ctx, keyAcceptedPolicy); err != nil {
		p.log.Error(ctx, "failed to clear policy acceptance", "error", err)
		return err
	}
	return nil
}

// StatusString renders the stored value for diagnostics.
func (p *PolicyService) StatusString(ctx context.Context) string {
	value, ok, err := p.store.Get(ctx, keyAcceptedPolicy)
	if err != nil {
		return "error reading"
	}
	if !ok || value == "" {
		return "not set"
	}
	return value
}
