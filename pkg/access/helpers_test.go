package access_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rentwise/accessgate/pkg/access"
	"github.com/rentwise/accessgate/pkg/plan"
	"github.com/rentwise/accessgate/pkg/store"
	"github.com/rentwise/accessgate/pkg/subscription"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

const day = 24 * time.Hour

type fixture struct {
	store   *store.Memory
	svc     access.Service
	ownerID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	m := store.NewMemory()
	return &fixture{
		store:   m,
		svc:     access.NewService(m, access.WithClock(func() time.Time { return now })),
		ownerID: uuid.New(),
	}
}

func (f *fixture) subscribe(t *testing.T, sub subscription.Subscription) {
	t.Helper()

	sub.OwnerID = f.ownerID
	if sub.StartedAt.IsZero() {
		sub.StartedAt = now.Add(-60 * day)
	}
	require.NoError(t, f.store.SaveSubscription(context.Background(), &sub))
}

// add creates n resources, one hour apart, and returns their ids oldest first.
func (f *fixture) add(t *testing.T, res plan.Resource, n int) []uuid.UUID {
	t.Helper()

	ids := make([]uuid.UUID, 0, n)
	for i := range n {
		id, err := f.store.Insert(context.Background(), store.Record{
			OwnerID:   f.ownerID,
			Kind:      res,
			CreatedAt: now.Add(-time.Duration(n-i) * time.Hour),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

// mockStore is a Store whose answers are scripted per test.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetSubscription(ctx context.Context, ownerID uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, ownerID)
	sub, _ := args.Get(0).(*subscription.Subscription)
	return sub, args.Error(1)
}

func (m *mockStore) CountLive(ctx context.Context, ownerID uuid.UUID, res plan.Resource) (int64, error) {
	args := m.Called(ctx, ownerID, res)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) ListIDsNewestFirst(ctx context.Context, ownerID uuid.UUID, res plan.Resource, offset, limit int64) ([]uuid.UUID, error) {
	args := m.Called(ctx, ownerID, res, offset, limit)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *mockStore) CountDocuments(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}
