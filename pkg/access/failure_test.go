package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rentwise/accessgate/pkg/access"
	"github.com/rentwise/accessgate/pkg/plan"
	"github.com/rentwise/accessgate/pkg/subscription"
)

var errDown = errors.New("connection refused")

func TestStoreFailure_SubscriptionRead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ownerID := uuid.New()

	st := &mockStore{}
	st.On("GetSubscription", mock.Anything, ownerID).Return(nil, errDown)
	st.On("CountLive", mock.Anything, ownerID, mock.Anything).Return(int64(0), nil)
	st.On("CountDocuments", mock.Anything, ownerID).Return(int64(0), nil)
	svc := access.NewService(st)

	ok, err := svc.CanAddProperty(ctx, ownerID)
	assert.False(t, ok)
	assert.ErrorIs(t, err, access.ErrStoreUnavailable)
	assert.ErrorIs(t, err, errDown)

	ok, err = svc.CanAddDocument(ctx, ownerID)
	assert.False(t, ok)
	assert.ErrorIs(t, err, access.ErrStoreUnavailable)

	ok, err = svc.CanAddFinancialTransaction(ctx, ownerID)
	assert.False(t, ok)
	assert.ErrorIs(t, err, access.ErrStoreUnavailable)

	_, err = svc.GetBlockedTenants(ctx, ownerID)
	assert.ErrorIs(t, err, access.ErrStoreUnavailable)

	ok, err = svc.CanViewTenantDetails(ctx, ownerID, uuid.New())
	assert.False(t, ok)
	assert.ErrorIs(t, err, access.ErrStoreUnavailable)

	_, err = svc.ResolveSubscriptionStatus(ctx, ownerID)
	assert.ErrorIs(t, err, access.ErrStoreUnavailable)

	_, err = svc.Summary(ctx, ownerID)
	assert.ErrorIs(t, err, access.ErrStoreUnavailable)
}

func TestStoreFailure_Count(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ownerID := uuid.New()

	st := &mockStore{}
	st.On("GetSubscription", mock.Anything, ownerID).Return(nil, subscription.ErrSubscriptionNotFound)
	st.On("CountLive", mock.Anything, ownerID, mock.Anything).Return(int64(0), errDown)
	st.On("CountDocuments", mock.Anything, ownerID).Return(int64(0), errDown)
	svc := access.NewService(st)

	ok, err := svc.CanAddTenant(ctx, ownerID)
	assert.False(t, ok)
	assert.ErrorIs(t, err, access.ErrStoreUnavailable)

	ok, err = svc.CanAddDocument(ctx, ownerID)
	assert.False(t, ok)
	assert.ErrorIs(t, err, access.ErrStoreUnavailable)

	_, err = svc.Usage(ctx, ownerID, plan.ResourceDocuments)
	assert.ErrorIs(t, err, access.ErrStoreUnavailable)

	_, err = svc.Summary(ctx, ownerID)
	assert.ErrorIs(t, err, access.ErrStoreUnavailable)

	st.AssertNotCalled(t, "ListIDsNewestFirst", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// A failed listing must never read as "nothing blocked".
func TestStoreFailure_Listing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ownerID := uuid.New()

	st := &mockStore{}
	st.On("GetSubscription", mock.Anything, ownerID).Return(nil, subscription.ErrSubscriptionNotFound)
	st.On("CountLive", mock.Anything, ownerID, plan.ResourceProperties).Return(int64(5), nil)
	st.On("ListIDsNewestFirst", mock.Anything, ownerID, plan.ResourceProperties, int64(2), int64(3)).Return(nil, errDown)
	svc := access.NewService(st)

	blocked, err := svc.GetBlockedProperties(ctx, ownerID)
	require.ErrorIs(t, err, access.ErrStoreUnavailable)
	assert.Zero(t, blocked.Len())

	ok, err := svc.CanViewPropertyDetails(ctx, ownerID, uuid.New())
	assert.False(t, ok)
	assert.ErrorIs(t, err, access.ErrStoreUnavailable)

	st.AssertExpectations(t)
}

func TestBlockedIDs_QueriesSurplusWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ownerID := uuid.New()
	oldest := []uuid.UUID{uuid.New(), uuid.New()}

	st := &mockStore{}
	st.On("GetSubscription", mock.Anything, ownerID).Return(&subscription.Subscription{
		OwnerID: ownerID, Plan: plan.Basic, Status: subscription.StatusActive,
	}, nil)
	st.On("CountLive", mock.Anything, ownerID, plan.ResourceTenants).Return(int64(12), nil)
	st.On("ListIDsNewestFirst", mock.Anything, ownerID, plan.ResourceTenants, int64(10), int64(2)).Return(oldest, nil)
	svc := access.NewService(st)

	blocked, err := svc.GetBlockedTenants(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, oldest, blocked.IDs())
	st.AssertExpectations(t)
}

func TestBlockedIDs_SkipsListingWithinQuota(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ownerID := uuid.New()

	st := &mockStore{}
	st.On("GetSubscription", mock.Anything, ownerID).Return(nil, subscription.ErrSubscriptionNotFound)
	st.On("CountLive", mock.Anything, ownerID, plan.ResourceTenants).Return(int64(2), nil)
	svc := access.NewService(st)

	blocked, err := svc.GetBlockedTenants(ctx, ownerID)
	require.NoError(t, err)
	assert.Zero(t, blocked.Len())
	st.AssertNotCalled(t, "ListIDsNewestFirst", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
