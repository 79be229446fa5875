package subscription

import (
	"time"

	"github.com/rentwise/accessgate/pkg/plan"
)

// rule is one guard clause of the resolver. Rules are evaluated in order and
// the first match wins.
type rule struct {
	name    string
	matches func(sub *Subscription, now time.Time) bool
	result  func(sub *Subscription) EffectiveStatus
}

func always(*Subscription, time.Time) bool { return true }

func inactive(reason string) func(*Subscription) EffectiveStatus {
	return func(*Subscription) EffectiveStatus { return EffectiveStatus{Reason: reason} }
}

// paidRules apply to basic and premium records. The expiry date is checked
// before the status field, so a past expiresAt wins over "active" or "cancelled".
var paidRules = []rule{
	{
		name:    "expired",
		matches: func(s *Subscription, now time.Time) bool { return reached(s.ExpiresAt, now) },
		result:  inactive(ReasonExpired),
	},
	{
		name: "cancelled within paid period",
		matches: func(s *Subscription, now time.Time) bool {
			return s.Status == StatusCancelled && pending(s.ExpiresAt, now)
		},
		result: func(*Subscription) EffectiveStatus {
			return EffectiveStatus{Active: true, CancelledActiveUntilExpiry: true, Reason: ReasonCancelledActive}
		},
	},
	{
		name:    "cancelled",
		matches: func(s *Subscription, _ time.Time) bool { return s.Status == StatusCancelled },
		result:  inactive(ReasonCancelledAndExpired),
	},
	{
		name:    "status expired",
		matches: func(s *Subscription, _ time.Time) bool { return s.Status == StatusExpired },
		result:  inactive(statusReason(StatusExpired)),
	},
	{
		// Records edited by hand often carry only a plan.
		name:    "default active",
		matches: always,
		result: func(*Subscription) EffectiveStatus {
			return EffectiveStatus{Active: true, Reason: ReasonActive}
		},
	},
}

// freeRules apply to free records and to records with an unknown plan.
var freeRules = []rule{
	{
		name:    "trial",
		matches: func(s *Subscription, now time.Time) bool { return pending(s.TrialEndsAt, now) },
		result: func(*Subscription) EffectiveStatus {
			return EffectiveStatus{Active: true, Trial: true, Reason: ReasonTrial}
		},
	},
	{
		name:    "grace period",
		matches: func(s *Subscription, now time.Time) bool { return pending(s.GracePeriodEndsAt, now) },
		result: func(*Subscription) EffectiveStatus {
			return EffectiveStatus{Active: true, GracePeriod: true, Reason: ReasonGracePeriod}
		},
	},
	{
		name: "active until expiry",
		matches: func(s *Subscription, now time.Time) bool {
			return s.Status == StatusActive && pending(s.ExpiresAt, now)
		},
		result: func(*Subscription) EffectiveStatus {
			return EffectiveStatus{Active: true, Reason: ReasonActive}
		},
	},
	{
		name:    "expired",
		matches: func(s *Subscription, now time.Time) bool { return reached(s.ExpiresAt, now) },
		result:  inactive(ReasonExpired),
	},
	{
		name:    "not active",
		matches: func(s *Subscription, _ time.Time) bool { return s.Status != StatusActive },
		result: func(s *Subscription) EffectiveStatus {
			return EffectiveStatus{Reason: statusReason(s.Status)}
		},
	},
	{
		name:    "no evidence",
		matches: always,
		result:  inactive(ReasonNoValidExpiration),
	},
}

// Resolve computes the effective status of sub at now. A nil sub means the
// owner has no record. Resolve has no side effects.
func Resolve(sub *Subscription, now time.Time) EffectiveStatus {
	status, _ := resolve(sub, now)
	return status
}

// MatchedRule returns the name of the guard clause Resolve selects for sub at now.
func MatchedRule(sub *Subscription, now time.Time) string {
	_, name := resolve(sub, now)
	return name
}

func resolve(sub *Subscription, now time.Time) (EffectiveStatus, string) {
	if sub == nil {
		return EffectiveStatus{Reason: ReasonNotFound}, "no record"
	}

	rules := freeRules
	if plan.IsPaid(sub.Plan) {
		rules = paidRules
	}

	for _, r := range rules {
		if r.matches(sub, now) {
			return r.result(sub), r.name
		}
	}

	// Both tables end with a catch-all rule.
	return EffectiveStatus{Reason: ReasonNoValidExpiration}, "no evidence"
}
