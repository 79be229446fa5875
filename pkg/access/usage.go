package access

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentwise/accessgate/pkg/async"
	"github.com/rentwise/accessgate/pkg/plan"
	"github.com/rentwise/accessgate/pkg/subscription"
)

// Usage describes one resource kind for an owner at the time of the call.
type Usage struct {
	Resource plan.Resource `json:"resource"`
	Current  int64         `json:"current"`
	Limit    int64         `json:"limit"` // plan.Unlimited when no quota applies
	Blocked  int64         `json:"blocked"`
}

// Summary is the dashboard view of an owner's entitlements.
type Summary struct {
	OwnerID               uuid.UUID                    `json:"owner_id"`
	Plan                  plan.ID                      `json:"plan"`
	HasSubscription       bool                         `json:"has_subscription"`
	Status                subscription.EffectiveStatus `json:"status"`
	Prompt                subscription.PromptKind      `json:"prompt"`
	FinancialTransactions bool                         `json:"financial_transactions"`
	Resources             []Usage                      `json:"resources"`
}

func (s snapshot) usage(res plan.Resource) Usage {
	if res == plan.ResourceDocuments {
		return Usage{Resource: res, Current: s.count, Limit: plan.DocumentLimit(s.planID())}
	}
	limit := s.limit(res)
	return Usage{
		Resource: res,
		Current:  s.count,
		Limit:    limit,
		Blocked:  plan.Surplus(s.count, limit),
	}
}

// Usage returns the count, effective limit and blocked count for res.
func (s *service) Usage(ctx context.Context, ownerID uuid.UUID, res plan.Resource) (Usage, error) {
	if res != plan.ResourceDocuments {
		snap, err := s.load(ctx, ownerID, res)
		if err != nil {
			return Usage{}, err
		}
		return snap.usage(res), nil
	}

	sub, err := s.getSubscription(ctx, ownerID)
	if err != nil {
		return Usage{}, s.storeFailure(ctx, ownerID, res, err)
	}
	count, err := s.store.CountDocuments(ctx, ownerID)
	if err != nil {
		return Usage{}, s.storeFailure(ctx, ownerID, res, err)
	}
	return snapshot{sub: sub, count: count}.usage(res), nil
}

// Summary reads the subscription once and all counts concurrently so every
// figure in the result is derived from the same record and instant.
func (s *service) Summary(ctx context.Context, ownerID uuid.UUID) (Summary, error) {
	kinds := []plan.Resource{plan.ResourceProperties, plan.ResourceTenants, plan.ResourceDocuments}

	subF := async.Go(ctx, func(ctx context.Context) (*subscription.Subscription, error) {
		return s.getSubscription(ctx, ownerID)
	})
	countFs := make([]*async.Future[int64], len(kinds))
	for i, res := range kinds {
		countFs[i] = async.Go(ctx, func(ctx context.Context) (int64, error) {
			if res == plan.ResourceDocuments {
				return s.store.CountDocuments(ctx, ownerID)
			}
			return s.store.CountLive(ctx, ownerID, res)
		})
	}

	sub, subErr := subF.Await(ctx)
	counts, countErr := async.WaitAll(ctx, countFs...)
	if subErr != nil {
		return Summary{}, s.storeFailure(ctx, ownerID, "summary", subErr)
	}
	if countErr != nil {
		return Summary{}, s.storeFailure(ctx, ownerID, "summary", countErr)
	}

	status := subscription.Resolve(sub, s.now())
	base := snapshot{sub: sub, status: status}

	sum := Summary{
		OwnerID:               ownerID,
		Plan:                  plan.Normalize(base.planID()),
		HasSubscription:       sub != nil,
		Status:                status,
		Prompt:                status.Prompt(),
		FinancialTransactions: sub != nil && plan.AllowsFinancialTransactions(sub.Plan),
		Resources:             make([]Usage, len(kinds)),
	}
	for i, res := range kinds {
		snap := base
		snap.count = counts[i]
		sum.Resources[i] = snap.usage(res)
	}
	return sum, nil
}
