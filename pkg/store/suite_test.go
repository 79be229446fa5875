package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwise/accessgate/pkg/plan"
	"github.com/rentwise/accessgate/pkg/store"
	"github.com/rentwise/accessgate/pkg/subscription"
)

// base is truncated to milliseconds so every backend round-trips it exactly.
var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

// insertN creates n records of kind res for ownerID, one minute apart, oldest
// first, and returns their ids in creation order.
func insertN(t *testing.T, s store.ReadWriter, ownerID uuid.UUID, res plan.Resource, n int) []uuid.UUID {
	t.Helper()

	ids := make([]uuid.UUID, 0, n)
	for i := range n {
		id, err := s.Insert(context.Background(), store.Record{
			OwnerID:   ownerID,
			Kind:      res,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

// runStoreSuite exercises the behaviour every backend must share.
func runStoreSuite(t *testing.T, s store.ReadWriter) {
	ctx := context.Background()

	t.Run("missing subscription", func(t *testing.T) {
		sub, err := s.GetSubscription(ctx, uuid.New())
		assert.ErrorIs(t, err, subscription.ErrSubscriptionNotFound)
		assert.Nil(t, sub)
	})

	t.Run("save and replace subscription", func(t *testing.T) {
		ownerID := uuid.New()
		expires := base.Add(30 * 24 * time.Hour)

		require.NoError(t, s.SaveSubscription(ctx, &subscription.Subscription{
			OwnerID:   ownerID,
			Plan:      plan.Basic,
			Status:    subscription.StatusActive,
			StartedAt: base,
			ExpiresAt: &expires,
		}))

		got, err := s.GetSubscription(ctx, ownerID)
		require.NoError(t, err)
		assert.Equal(t, ownerID, got.OwnerID)
		assert.Equal(t, plan.Basic, got.Plan)
		assert.Equal(t, subscription.StatusActive, got.Status)
		assert.True(t, base.Equal(got.StartedAt))
		require.NotNil(t, got.ExpiresAt)
		assert.True(t, expires.Equal(*got.ExpiresAt))
		assert.Nil(t, got.TrialEndsAt)
		assert.Nil(t, got.GracePeriodEndsAt)

		require.NoError(t, s.SaveSubscription(ctx, &subscription.Subscription{
			OwnerID:               ownerID,
			Plan:                  plan.Premium,
			Status:                subscription.StatusCancelled,
			StartedAt:             base,
			ExpiresAt:             &expires,
			ExternalTransactionID: "tx-1",
		}))

		got, err = s.GetSubscription(ctx, ownerID)
		require.NoError(t, err)
		assert.Equal(t, plan.Premium, got.Plan)
		assert.Equal(t, subscription.StatusCancelled, got.Status)
		assert.Equal(t, "tx-1", got.ExternalTransactionID)
	})

	t.Run("save requires owner", func(t *testing.T) {
		assert.ErrorIs(t, s.SaveSubscription(ctx, &subscription.Subscription{Plan: plan.Basic}), store.ErrMissingOwnerID)
		assert.ErrorIs(t, s.SaveSubscription(ctx, nil), store.ErrMissingOwnerID)
	})

	t.Run("insert validates kind and owner", func(t *testing.T) {
		_, err := s.Insert(ctx, store.Record{OwnerID: uuid.New(), Kind: "vehicles"})
		assert.ErrorIs(t, err, store.ErrUnknownResource)

		_, err = s.Insert(ctx, store.Record{Kind: plan.ResourceTenants})
		assert.ErrorIs(t, err, store.ErrMissingOwnerID)

		_, err = s.Insert(ctx, store.Record{OwnerID: uuid.New(), Kind: plan.ResourceTenants, ArchivedAt: ptr(base)})
		assert.ErrorIs(t, err, store.ErrArchiveUnsupported)
	})

	t.Run("counts are scoped to owner and kind", func(t *testing.T) {
		owner, other := uuid.New(), uuid.New()
		insertN(t, s, owner, plan.ResourceProperties, 3)
		insertN(t, s, owner, plan.ResourceTenants, 2)
		insertN(t, s, other, plan.ResourceProperties, 4)

		n, err := s.CountLive(ctx, owner, plan.ResourceProperties)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		n, err = s.CountLive(ctx, owner, plan.ResourceTenants)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = s.CountLive(ctx, uuid.New(), plan.ResourceTenants)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("archived properties are not live", func(t *testing.T) {
		owner := uuid.New()
		ids := insertN(t, s, owner, plan.ResourceProperties, 3)
		require.NoError(t, s.Archive(ctx, ids[2], base.Add(time.Hour)))

		n, err := s.CountLive(ctx, owner, plan.ResourceProperties)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		listed, err := s.ListIDsNewestFirst(ctx, owner, plan.ResourceProperties, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{ids[1], ids[0]}, listed)

		assert.ErrorIs(t, s.Archive(ctx, uuid.New(), base), store.ErrRecordNotFound)
	})

	t.Run("list newest first with window", func(t *testing.T) {
		owner := uuid.New()
		ids := insertN(t, s, owner, plan.ResourceTenants, 5)

		all, err := s.ListIDsNewestFirst(ctx, owner, plan.ResourceTenants, 0, 5)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{ids[4], ids[3], ids[2], ids[1], ids[0]}, all)

		tail, err := s.ListIDsNewestFirst(ctx, owner, plan.ResourceTenants, 2, 3)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{ids[2], ids[1], ids[0]}, tail)

		clipped, err := s.ListIDsNewestFirst(ctx, owner, plan.ResourceTenants, 4, 10)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{ids[0]}, clipped)

		past, err := s.ListIDsNewestFirst(ctx, owner, plan.ResourceTenants, 10, 3)
		require.NoError(t, err)
		assert.Empty(t, past)

		none, err := s.ListIDsNewestFirst(ctx, owner, plan.ResourceTenants, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("equal timestamps break ties by id descending", func(t *testing.T) {
		owner := uuid.New()
		// Ids are global primary keys, so only the leading byte is fixed.
		low, high := owner, owner
		low[0], high[0] = 0x00, 0xff

		for _, id := range []uuid.UUID{low, high} {
			_, err := s.Insert(ctx, store.Record{ID: id, OwnerID: owner, Kind: plan.ResourceTenants, CreatedAt: base})
			require.NoError(t, err)
		}

		listed, err := s.ListIDsNewestFirst(ctx, owner, plan.ResourceTenants, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{high, low}, listed)
	})

	t.Run("invalid window and kind", func(t *testing.T) {
		_, err := s.ListIDsNewestFirst(ctx, uuid.New(), plan.ResourceTenants, -1, 2)
		assert.ErrorIs(t, err, store.ErrInvalidWindow)

		_, err = s.ListIDsNewestFirst(ctx, uuid.New(), plan.ResourceDocuments, 0, 2)
		assert.ErrorIs(t, err, store.ErrUnknownResource)

		_, err = s.CountLive(ctx, uuid.New(), "vehicles")
		assert.ErrorIs(t, err, store.ErrUnknownResource)
	})

	t.Run("documents", func(t *testing.T) {
		owner := uuid.New()
		insertN(t, s, owner, plan.ResourceDocuments, 2)

		n, err := s.CountDocuments(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("delete", func(t *testing.T) {
		owner := uuid.New()
		ids := insertN(t, s, owner, plan.ResourceTenants, 2)

		require.NoError(t, s.Delete(ctx, plan.ResourceTenants, ids[0]))
		assert.ErrorIs(t, s.Delete(ctx, plan.ResourceTenants, ids[0]), store.ErrRecordNotFound)

		n, err := s.CountLive(ctx, owner, plan.ResourceTenants)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}
