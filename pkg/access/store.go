package access

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentwise/accessgate/pkg/plan"
	"github.com/rentwise/accessgate/pkg/subscription"
)

// Store is the read-only query contract the engine needs from the backing data store.
type Store interface {
	// GetSubscription returns the owner's subscription record, or
	// subscription.ErrSubscriptionNotFound when the owner has none.
	GetSubscription(ctx context.Context, ownerID uuid.UUID) (*subscription.Subscription, error)

	// CountLive counts the owner's live resources of the given kind.
	// Archived properties are excluded; tenants have no archival state.
	CountLive(ctx context.Context, ownerID uuid.UUID, res plan.Resource) (int64, error)

	// ListIDsNewestFirst returns ids of the owner's live resources ordered by
	// creation time descending, skipping offset rows and returning at most limit.
	ListIDsNewestFirst(ctx context.Context, ownerID uuid.UUID, res plan.Resource, offset, limit int64) ([]uuid.UUID, error)

	// CountDocuments counts the owner's stored documents.
	CountDocuments(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// tracked reports whether res is one of the quota-managed collections.
func tracked(res plan.Resource) bool {
	return res == plan.ResourceProperties || res == plan.ResourceTenants
}
