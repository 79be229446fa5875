package plan

// Properties and tenants share one quota number per plan.
const (
	freeQuota  int64 = 2
	basicQuota int64 = 10
)

var catalog = map[ID]Plan{
	Free: {
		ID:   Free,
		Name: "Free",
		Limits: map[Resource]int64{
			ResourceProperties: freeQuota,
			ResourceTenants:    freeQuota,
			ResourceDocuments:  1,
		},
	},
	Basic: {
		ID:   Basic,
		Name: "Basic",
		Limits: map[Resource]int64{
			ResourceProperties: basicQuota,
			ResourceTenants:    basicQuota,
			ResourceDocuments:  Unlimited,
		},
		Features: []Feature{FeatureFinancialTransactions},
	},
	Premium: {
		ID:   Premium,
		Name: "Premium",
		Limits: map[Resource]int64{
			ResourceProperties: Unlimited,
			ResourceTenants:    Unlimited,
			ResourceDocuments:  Unlimited,
		},
		Features: []Feature{FeatureFinancialTransactions},
	},
}

// IsKnown reports whether id names a plan in the catalog.
func IsKnown(id ID) bool {
	_, ok := catalog[id]
	return ok
}

// Normalize maps unknown plan identifiers to Free.
func Normalize(id ID) ID {
	if IsKnown(id) {
		return id
	}
	return Free
}

// IsPaid reports whether id resolves to a paid plan.
func IsPaid(id ID) bool {
	switch Normalize(id) {
	case Basic, Premium:
		return true
	default:
		return false
	}
}

// Lookup returns the plan for id. Unknown identifiers get the free tier, never an error.
func Lookup(id ID) Plan {
	return catalog[Normalize(id)]
}

// All returns every plan ordered from the smallest to the largest quota.
func All() []Plan {
	return []Plan{catalog[Free], catalog[Basic], catalog[Premium]}
}

// LimitFor returns the quota of res for the plan.
func LimitFor(id ID, res Resource) int64 {
	return Lookup(id).Limit(res)
}

// FreeLimit returns the free tier's quota for res.
func FreeLimit(res Resource) int64 {
	return LimitFor(Free, res)
}

// AllowsFinancialTransactions reports whether the plan may record financial transactions.
func AllowsFinancialTransactions(id ID) bool {
	return Lookup(id).Has(FeatureFinancialTransactions)
}

// DocumentLimit returns how many documents the plan may store.
func DocumentLimit(id ID) int64 {
	return LimitFor(id, ResourceDocuments)
}
