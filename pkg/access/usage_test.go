package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwise/accessgate/pkg/access"
	"github.com/rentwise/accessgate/pkg/plan"
	"github.com/rentwise/accessgate/pkg/subscription"
)

func TestUsage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	f.add(t, plan.ResourceProperties, 5)
	f.add(t, plan.ResourceDocuments, 3)

	u, err := f.svc.Usage(ctx, f.ownerID, plan.ResourceProperties)
	require.NoError(t, err)
	assert.Equal(t, access.Usage{Resource: plan.ResourceProperties, Current: 5, Limit: 2, Blocked: 3}, u)

	u, err = f.svc.Usage(ctx, f.ownerID, plan.ResourceDocuments)
	require.NoError(t, err)
	assert.Equal(t, access.Usage{Resource: plan.ResourceDocuments, Current: 3, Limit: 1}, u)

	_, err = f.svc.Usage(ctx, f.ownerID, "vehicles")
	assert.ErrorIs(t, err, access.ErrInvalidResource)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	t.Run("no record", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.add(t, plan.ResourceTenants, 3)

		sum, err := f.svc.Summary(context.Background(), f.ownerID)
		require.NoError(t, err)
		assert.Equal(t, f.ownerID, sum.OwnerID)
		assert.Equal(t, plan.Free, sum.Plan)
		assert.False(t, sum.HasSubscription)
		assert.False(t, sum.FinancialTransactions)
		assert.Equal(t, subscription.PromptStandard, sum.Prompt)
		assert.Equal(t, []access.Usage{
			{Resource: plan.ResourceProperties, Current: 0, Limit: 2},
			{Resource: plan.ResourceTenants, Current: 3, Limit: 2, Blocked: 1},
			{Resource: plan.ResourceDocuments, Current: 0, Limit: 1},
		}, sum.Resources)
	})

	t.Run("trial", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.subscribe(t, subscription.Subscription{Plan: plan.Free, TrialEndsAt: at(4 * day)})
		f.add(t, plan.ResourceProperties, 8)

		sum, err := f.svc.Summary(context.Background(), f.ownerID)
		require.NoError(t, err)
		assert.True(t, sum.HasSubscription)
		assert.True(t, sum.Status.Trial)
		assert.Equal(t, subscription.PromptTrial, sum.Prompt)
		assert.Equal(t, access.Usage{Resource: plan.ResourceProperties, Current: 8, Limit: plan.Unlimited}, sum.Resources[0])
	})

	t.Run("expired basic", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.subscribe(t, subscription.Subscription{Plan: plan.Basic, Status: subscription.StatusActive, ExpiresAt: at(-day)})
		f.add(t, plan.ResourceProperties, 4)

		sum, err := f.svc.Summary(context.Background(), f.ownerID)
		require.NoError(t, err)
		assert.Equal(t, plan.Basic, sum.Plan)
		assert.Equal(t, subscription.PromptExpired, sum.Prompt)
		assert.True(t, sum.FinancialTransactions)
		assert.Equal(t, int64(2), sum.Resources[0].Blocked)
		assert.Equal(t, plan.Unlimited, sum.Resources[2].Limit)
	})
}
