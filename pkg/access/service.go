package access

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rentwise/accessgate/pkg/async"
	"github.com/rentwise/accessgate/pkg/logger"
	"github.com/rentwise/accessgate/pkg/plan"
	"github.com/rentwise/accessgate/pkg/subscription"
)

// Service decides what an owner may create and which existing resources are
// inaccessible under the owner's current subscription. Every answer is
// recomputed from the store on each call; nothing is cached or persisted.
type Service interface {
	// Resource Access Gate
	CanAdd(ctx context.Context, ownerID uuid.UUID, res plan.Resource) (bool, error)
	CanAddProperty(ctx context.Context, ownerID uuid.UUID) (bool, error)
	CanAddTenant(ctx context.Context, ownerID uuid.UUID) (bool, error)
	CanAddDocument(ctx context.Context, ownerID uuid.UUID) (bool, error)
	CanAddFinancialTransaction(ctx context.Context, ownerID uuid.UUID) (bool, error)

	// Blocked-Set Selector
	BlockedIDs(ctx context.Context, ownerID uuid.UUID, res plan.Resource) (BlockedSet, error)
	GetBlockedProperties(ctx context.Context, ownerID uuid.UUID) (BlockedSet, error)
	GetBlockedTenants(ctx context.Context, ownerID uuid.UUID) (BlockedSet, error)

	// Detail-Visibility Check
	CanViewDetails(ctx context.Context, ownerID uuid.UUID, res plan.Resource, id uuid.UUID) (bool, error)
	CanViewPropertyDetails(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	CanViewTenantDetails(ctx context.Context, ownerID, id uuid.UUID) (bool, error)

	// Status and usage
	ResolveSubscriptionStatus(ctx context.Context, ownerID uuid.UUID) (subscription.EffectiveStatus, error)
	Usage(ctx context.Context, ownerID uuid.UUID, res plan.Resource) (Usage, error)
	Summary(ctx context.Context, ownerID uuid.UUID) (Summary, error)
}

type service struct {
	store Store
	now   func() time.Time
	log   *slog.Logger
}

// NewService creates a Service reading from store.
// Panics if store is nil to fail fast during initialization.
func NewService(store Store, opts ...Option) Service {
	if store == nil {
		panic("access: Store is required")
	}

	s := &service{
		store: store,
		now:   time.Now,
		log:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// snapshot is everything one decision about a resource kind depends on.
type snapshot struct {
	sub    *subscription.Subscription // nil when the owner has no record
	status subscription.EffectiveStatus
	count  int64
}

// planID returns the plan recorded for the owner, or Free without a record.
func (s snapshot) planID() plan.ID {
	if s.sub == nil {
		return plan.Free
	}
	return s.sub.Plan
}

// limit is the quota in force for res:
//
//   - no record:      free quota
//   - trial or grace: unlimited
//   - active:         the plan's quota
//   - inactive:       free quota
func (s snapshot) limit(res plan.Resource) int64 {
	switch {
	case s.sub == nil:
		return plan.FreeLimit(res)
	case s.status.BypassesQuota():
		return plan.Unlimited
	case s.status.Active:
		return plan.LimitFor(s.sub.Plan, res)
	default:
		return plan.FreeLimit(res)
	}
}

// getSubscription maps a missing record to nil.
func (s *service) getSubscription(ctx context.Context, ownerID uuid.UUID) (*subscription.Subscription, error) {
	sub, err := s.store.GetSubscription(ctx, ownerID)
	if errors.Is(err, subscription.ErrSubscriptionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// load reads the subscription record and the live count concurrently and
// waits for both.
func (s *service) load(ctx context.Context, ownerID uuid.UUID, res plan.Resource) (snapshot, error) {
	if !tracked(res) {
		return snapshot{}, ErrInvalidResource
	}

	subF := async.Go(ctx, func(ctx context.Context) (*subscription.Subscription, error) {
		return s.getSubscription(ctx, ownerID)
	})
	countF := async.Go(ctx, func(ctx context.Context) (int64, error) {
		return s.store.CountLive(ctx, ownerID, res)
	})

	sub, subErr := subF.Await(ctx)
	count, countErr := countF.Await(ctx)
	if err := errors.Join(subErr, countErr); err != nil {
		return snapshot{}, s.storeFailure(ctx, ownerID, res, err)
	}

	return snapshot{
		sub:    sub,
		status: subscription.Resolve(sub, s.now()),
		count:  count,
	}, nil
}

func (s *service) storeFailure(ctx context.Context, ownerID uuid.UUID, res plan.Resource, err error) error {
	s.log.WarnContext(ctx, "access store read failed",
		logger.OwnerID(ownerID),
		logger.Resource(res),
		logger.Error(err),
	)
	return errors.Join(ErrStoreUnavailable, err)
}

// CanAdd reports whether the owner may create one more resource of kind res.
// Returns false with the error when the store cannot be read.
func (s *service) CanAdd(ctx context.Context, ownerID uuid.UUID, res plan.Resource) (bool, error) {
	snap, err := s.load(ctx, ownerID, res)
	if err != nil {
		return false, err
	}

	limit := snap.limit(res)
	allowed := plan.Within(snap.count, limit)

	s.log.DebugContext(ctx, "create check",
		logger.OwnerID(ownerID),
		logger.Resource(res),
		logger.Plan(snap.planID()),
		slog.Int64("count", snap.count),
		slog.Int64("limit", limit),
		slog.Bool("allowed", allowed),
	)

	return allowed, nil
}

func (s *service) CanAddProperty(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	return s.CanAdd(ctx, ownerID, plan.ResourceProperties)
}

func (s *service) CanAddTenant(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	return s.CanAdd(ctx, ownerID, plan.ResourceTenants)
}

// CanAddDocument checks the document quota of the recorded plan. Only the free
// tier is capped, so paid plans skip the count query.
func (s *service) CanAddDocument(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	sub, err := s.getSubscription(ctx, ownerID)
	if err != nil {
		return false, s.storeFailure(ctx, ownerID, plan.ResourceDocuments, err)
	}

	limit := plan.DocumentLimit(snapshot{sub: sub}.planID())
	if limit == plan.Unlimited {
		return true, nil
	}

	count, err := s.store.CountDocuments(ctx, ownerID)
	if err != nil {
		return false, s.storeFailure(ctx, ownerID, plan.ResourceDocuments, err)
	}
	return plan.Within(count, limit), nil
}

// CanAddFinancialTransaction is a pure plan entitlement; no count applies.
func (s *service) CanAddFinancialTransaction(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	sub, err := s.getSubscription(ctx, ownerID)
	if err != nil {
		return false, s.storeFailure(ctx, ownerID, "financial_transactions", err)
	}
	if sub == nil {
		return false, nil
	}
	return plan.AllowsFinancialTransactions(sub.Plan), nil
}

// BlockedIDs returns the oldest live resources of kind res that exceed the
// quota in force. The store lists newest first, so the window starting at
// offset limit holds exactly the count-limit oldest resources.
// On store failure it returns the error and never an empty set.
func (s *service) BlockedIDs(ctx context.Context, ownerID uuid.UUID, res plan.Resource) (BlockedSet, error) {
	snap, err := s.load(ctx, ownerID, res)
	if err != nil {
		return BlockedSet{}, err
	}

	limit := snap.limit(res)
	surplus := plan.Surplus(snap.count, limit)
	if surplus == 0 {
		return newBlockedSet(nil), nil
	}

	ids, err := s.store.ListIDsNewestFirst(ctx, ownerID, res, limit, surplus)
	if err != nil {
		return BlockedSet{}, s.storeFailure(ctx, ownerID, res, err)
	}

	s.log.DebugContext(ctx, "resources blocked",
		logger.OwnerID(ownerID),
		logger.Resource(res),
		logger.Plan(snap.planID()),
		slog.Int64("count", snap.count),
		slog.Int64("limit", limit),
		slog.Int("blocked", len(ids)),
	)

	return newBlockedSet(ids), nil
}

func (s *service) GetBlockedProperties(ctx context.Context, ownerID uuid.UUID) (BlockedSet, error) {
	return s.BlockedIDs(ctx, ownerID, plan.ResourceProperties)
}

func (s *service) GetBlockedTenants(ctx context.Context, ownerID uuid.UUID) (BlockedSet, error) {
	return s.BlockedIDs(ctx, ownerID, plan.ResourceTenants)
}

// CanViewDetails reports whether id is outside the blocked set. List views
// should fetch BlockedIDs once per render and call Contains per item instead.
func (s *service) CanViewDetails(ctx context.Context, ownerID uuid.UUID, res plan.Resource, id uuid.UUID) (bool, error) {
	blocked, err := s.BlockedIDs(ctx, ownerID, res)
	if err != nil {
		return false, err
	}
	return !blocked.Contains(id), nil
}

func (s *service) CanViewPropertyDetails(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	return s.CanViewDetails(ctx, ownerID, plan.ResourceProperties, id)
}

func (s *service) CanViewTenantDetails(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	return s.CanViewDetails(ctx, ownerID, plan.ResourceTenants, id)
}

// ResolveSubscriptionStatus resolves the owner's record at the current time.
func (s *service) ResolveSubscriptionStatus(ctx context.Context, ownerID uuid.UUID) (subscription.EffectiveStatus, error) {
	sub, err := s.getSubscription(ctx, ownerID)
	if err != nil {
		return subscription.EffectiveStatus{}, s.storeFailure(ctx, ownerID, "subscription", err)
	}
	return subscription.Resolve(sub, s.now()), nil
}
