package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rentwise/accessgate/pkg/logger"
	"github.com/rentwise/accessgate/pkg/subscription"
)

const (
	cacheKeyPrefix = "accessgate:subscription:"
	// absentMarker caches "no record" so free owners do not hit the store
	// on every check.
	absentMarker = "-"
)

var _ ReadWriter = (*SubscriptionCache)(nil)

// SubscriptionCache caches subscription reads in Redis in front of another
// store. Counts and listings always go to the wrapped store. Redis failures
// fall through to the wrapped store, never to a cached answer.
type SubscriptionCache struct {
	ReadWriter

	client redis.UniversalClient
	ttl    time.Duration
	log    *slog.Logger
}

// NewSubscriptionCache wraps next. A nil log discards cache warnings.
func NewSubscriptionCache(next ReadWriter, client redis.UniversalClient, ttl time.Duration, log *slog.Logger) *SubscriptionCache {
	if log == nil {
		log = logger.Discard()
	}
	return &SubscriptionCache{
		ReadWriter: next,
		client:     client,
		ttl:        ttl,
		log:        log.With(logger.Component("subscription_cache")),
	}
}

func cacheKey(ownerID uuid.UUID) string {
	return cacheKeyPrefix + ownerID.String()
}

func (c *SubscriptionCache) GetSubscription(ctx context.Context, ownerID uuid.UUID) (*subscription.Subscription, error) {
	raw, err := c.client.Get(ctx, cacheKey(ownerID)).Result()
	switch {
	case err == nil:
		if raw == absentMarker {
			return nil, subscription.ErrSubscriptionNotFound
		}
		var sub subscription.Subscription
		if err := json.Unmarshal([]byte(raw), &sub); err == nil {
			return &sub, nil
		}
		c.log.WarnContext(ctx, "dropping undecodable cache entry", logger.OwnerID(ownerID))
	case !errors.Is(err, redis.Nil):
		c.log.WarnContext(ctx, "subscription cache read failed", logger.OwnerID(ownerID), logger.Error(err))
		return c.ReadWriter.GetSubscription(ctx, ownerID)
	}

	sub, err := c.ReadWriter.GetSubscription(ctx, ownerID)
	switch {
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		c.put(ctx, ownerID, absentMarker)
	case err != nil:
		return nil, err
	default:
		if b, mErr := json.Marshal(sub); mErr == nil {
			c.put(ctx, ownerID, string(b))
		}
	}
	return sub, err
}

func (c *SubscriptionCache) put(ctx context.Context, ownerID uuid.UUID, value string) {
	if err := c.client.Set(ctx, cacheKey(ownerID), value, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "subscription cache write failed", logger.OwnerID(ownerID), logger.Error(err))
	}
}

// SaveSubscription writes through and drops the cached entry.
func (c *SubscriptionCache) SaveSubscription(ctx context.Context, sub *subscription.Subscription) error {
	if err := c.ReadWriter.SaveSubscription(ctx, sub); err != nil {
		return err
	}
	return c.Invalidate(ctx, sub.OwnerID)
}

// Invalidate drops the cached subscription for ownerID.
func (c *SubscriptionCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	return c.client.Del(ctx, cacheKey(ownerID)).Err()
}
