// Package access is the subscription-gated resource-access engine.
//
// It answers four questions for an owner, always from fresh store reads:
//
//   - may a new property, tenant, document or financial transaction be created (CanAdd*)
//   - which existing properties or tenants are inaccessible (BlockedIDs, GetBlocked*)
//   - may one resource's details be shown (CanView*Details)
//   - what is the effective subscription status (ResolveSubscriptionStatus)
//
// The quota in force for properties and tenants is:
//
//	no subscription record   free quota
//	trial or grace period    unlimited
//	active subscription      plan quota
//	inactive subscription    free quota
//
// When the live count exceeds the quota, the blocked set is exactly the
// count-quota oldest live resources by creation time. Nothing is persisted:
// an upgrade, downgrade, creation or deletion is reflected on the next call.
//
// Store failures fail closed. CanAdd* and CanView* return false with an error
// wrapping ErrStoreUnavailable; BlockedIDs returns the error rather than an
// empty set.
//
// Usage:
//
//	svc := access.NewService(store, access.WithLogger(log))
//
//	ok, err := svc.CanAddTenant(ctx, ownerID)
//	if err != nil || !ok {
//	    // show upgrade prompt
//	}
//
//	blocked, err := svc.GetBlockedProperties(ctx, ownerID)
//	if err != nil {
//	    return err
//	}
//	for _, p := range properties {
//	    p.Locked = blocked.Contains(p.ID)
//	}
package access
