// Package subscription models an owner's subscription record and resolves its
// effective status at a given instant.
//
// The record is written by other subsystems (purchase, downgrade, admin edits)
// and may be stale or partially populated. Resolve turns it into an
// EffectiveStatus by walking an ordered list of guard clauses; the first
// clause that matches decides the result.
//
// Paid plans (basic, premium):
//
//  1. expiresAt reached            -> inactive "expired"
//  2. cancelled, expiresAt pending -> active, CancelledActiveUntilExpiry
//  3. cancelled                    -> inactive "cancelled and expired"
//  4. status expired               -> inactive "status: expired"
//  5. otherwise                    -> active
//
// Free plan (and unknown plan identifiers):
//
//  1. trialEndsAt pending             -> active, Trial
//  2. gracePeriodEndsAt pending       -> active, GracePeriod
//  3. status active, expiresAt pending -> active
//  4. expiresAt reached               -> inactive "expired"
//  5. status not active               -> inactive "status: <status>"
//  6. otherwise                       -> inactive "no valid expiration date"
//
// A nil record resolves to inactive "not found"; callers treat it as the bare
// free tier.
//
// Usage:
//
//	status := subscription.Resolve(sub, time.Now())
//	if status.BypassesQuota() {
//	    // trial or grace period: no quota applies
//	}
package subscription
