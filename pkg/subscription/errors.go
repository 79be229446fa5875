package subscription

import "errors"

var (
	// ErrSubscriptionNotFound is returned by stores when the owner has no subscription record.
	// It describes a valid state (implicit free tier), not a failure.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
