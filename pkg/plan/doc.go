// Package plan is the static plan catalog: free, basic and premium tiers with
// their per-resource quotas and non-quota entitlements.
//
// Properties and tenants share one quota number per plan (free 2, basic 10,
// premium unlimited). Documents are capped at 1 on the free tier only, and
// financial transactions are a paid-tier feature.
//
// Lookups never fail. An identifier that is not in the catalog resolves to the
// free tier:
//
//	plan.LimitFor("legacy-gold", plan.ResourceProperties) // 2
//	plan.LimitFor(plan.Basic, plan.ResourceTenants)      // 10
//	plan.LimitFor(plan.Premium, plan.ResourceTenants)    // plan.Unlimited
package plan
