package plan

// ID identifies a subscription plan.
type ID string

// Known plan identifiers.
const (
	Free    ID = "free"
	Basic   ID = "basic"
	Premium ID = "premium"
)

// Resource represents a countable owner resource type.
type Resource string

const (
	ResourceProperties Resource = "properties"
	ResourceTenants    Resource = "tenants"
	ResourceDocuments  Resource = "documents"
)

// Unlimited indicates no limit for a resource (-1 chosen for SQL compatibility)
const Unlimited int64 = -1

// Feature represents a plan-specific capability that is not quota based.
type Feature string

const (
	FeatureFinancialTransactions Feature = "financial_transactions"
)

// UsageInfo contains the current usage and limit for a resource.
type UsageInfo struct {
	Current int64 `json:"current"`
	Limit   int64 `json:"limit"`
}
