package subscription

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentwise/accessgate/pkg/plan"
)

// Subscription is an owner's subscription record.
// Each owner has at most one, so OwnerID serves as the primary key.
type Subscription struct {
	OwnerID               uuid.UUID  `json:"owner_id"`
	Plan                  plan.ID    `json:"plan"`
	Status                Status     `json:"status,omitempty"`
	StartedAt             time.Time  `json:"started_at"`
	ExpiresAt             *time.Time `json:"expires_at,omitempty"`
	TrialEndsAt           *time.Time `json:"trial_ends_at,omitempty"`
	GracePeriodEndsAt     *time.Time `json:"grace_period_ends_at,omitempty"`
	ExternalTransactionID string     `json:"external_transaction_id,omitempty"` // empty when not purchased through a store
}

// EffectiveStatus is derived from a Subscription at a point in time and is never stored.
type EffectiveStatus struct {
	Active                     bool   `json:"active"`
	Trial                      bool   `json:"trial"`
	GracePeriod                bool   `json:"grace_period"`
	CancelledActiveUntilExpiry bool   `json:"cancelled_active_until_expiry"`
	Reason                     string `json:"reason"`
}

// BypassesQuota reports whether the status lifts every resource quota.
func (s EffectiveStatus) BypassesQuota() bool {
	return s.Trial || s.GracePeriod
}

// Prompt picks the upgrade-prompt flavour for the status.
func (s EffectiveStatus) Prompt() PromptKind {
	switch {
	case s.Trial:
		return PromptTrial
	case s.GracePeriod:
		return PromptGrace
	case !s.Active && s.Reason != ReasonNotFound:
		return PromptExpired
	default:
		return PromptStandard
	}
}

// reached reports whether t is set and now is at or after it.
func reached(t *time.Time, now time.Time) bool {
	return t != nil && !now.Before(*t)
}

// pending reports whether t is set and still in the future.
func pending(t *time.Time, now time.Time) bool {
	return t != nil && now.Before(*t)
}
