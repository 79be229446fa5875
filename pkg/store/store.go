package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rentwise/accessgate/pkg/access"
	"github.com/rentwise/accessgate/pkg/plan"
	"github.com/rentwise/accessgate/pkg/subscription"
)

// Writer covers the writes performed by the collaborators around the engine:
// the purchase and downgrade flows save subscriptions, the CRUD screens
// create, archive and delete resources.
type Writer interface {
	SaveSubscription(ctx context.Context, sub *subscription.Subscription) error
	Insert(ctx context.Context, rec Record) (uuid.UUID, error)
	Archive(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, res plan.Resource, id uuid.UUID) error
}

// ReadWriter is a full store backend.
type ReadWriter interface {
	access.Store
	Writer
}
