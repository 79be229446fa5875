package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwise/accessgate/pkg/plan"
	"github.com/rentwise/accessgate/pkg/store"
	"github.com/rentwise/accessgate/pkg/subscription"
)

func TestMemory(t *testing.T) {
	t.Parallel()
	runStoreSuite(t, store.NewMemory())
}

func TestMemory_ArchiveRejectsTenants(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	ids := insertN(t, m, uuid.New(), plan.ResourceTenants, 1)
	assert.ErrorIs(t, m.Archive(context.Background(), ids[0], base), store.ErrArchiveUnsupported)
}

func TestMemory_DeleteChecksKind(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	ids := insertN(t, m, uuid.New(), plan.ResourceTenants, 1)
	assert.ErrorIs(t, m.Delete(context.Background(), plan.ResourceProperties, ids[0]), store.ErrRecordNotFound)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := store.NewMemory()
	ownerID := uuid.New()
	expires := base
	require.NoError(t, m.SaveSubscription(ctx, &subscription.Subscription{OwnerID: ownerID, Plan: plan.Basic, ExpiresAt: &expires}))

	got, err := m.GetSubscription(ctx, ownerID)
	require.NoError(t, err)
	got.Plan = plan.Premium
	*got.ExpiresAt = base.AddDate(1, 0, 0)

	again, err := m.GetSubscription(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, plan.Basic, again.Plan)
	assert.True(t, base.Equal(*again.ExpiresAt))
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := store.NewMemory()
	ownerID := uuid.New()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := m.Insert(ctx, store.Record{OwnerID: ownerID, Kind: plan.ResourceProperties})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := m.ListIDsNewestFirst(ctx, ownerID, plan.ResourceProperties, 0, 5)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := m.CountLive(ctx, ownerID, plan.ResourceProperties)
	require.NoError(t, err)
	assert.Equal(t, int64(20), n)
}
