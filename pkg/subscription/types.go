package subscription

// Status is the raw lifecycle state written by the purchase and downgrade flows.
// The zero value means the field was never populated.
type Status string

const (
	StatusNone      Status = ""
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// Reasons reported by Resolve.
const (
	ReasonNotFound            = "not found"
	ReasonExpired             = "expired"
	ReasonCancelledAndExpired = "cancelled and expired"
	ReasonNoValidExpiration   = "no valid expiration date"
	ReasonActive              = "active"
	ReasonTrial               = "trial"
	ReasonGracePeriod         = "grace period"
	ReasonCancelledActive     = "cancelled, active until expiry"
)

// statusReason formats the reason for an inactive record carrying an explicit status.
func statusReason(s Status) string {
	return "status: " + string(s)
}

// PromptKind selects the copy the UI shows alongside an upgrade prompt.
type PromptKind string

const (
	PromptStandard PromptKind = "standard"
	PromptTrial    PromptKind = "trial"
	PromptGrace    PromptKind = "grace"
	PromptExpired  PromptKind = "expired"
)
