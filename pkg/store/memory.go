package store

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rentwise/accessgate/pkg/plan"
	"github.com/rentwise/accessgate/pkg/subscription"
)

var _ ReadWriter = (*Memory)(nil)

// Memory is an in-process store for development and tests.
// It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	subs    map[uuid.UUID]subscription.Subscription
	records map[uuid.UUID]Record
}

func NewMemory() *Memory {
	return &Memory{
		subs:    make(map[uuid.UUID]subscription.Subscription),
		records: make(map[uuid.UUID]Record),
	}
}

// SaveSubscription creates or replaces the owner's subscription record.
func (m *Memory) SaveSubscription(_ context.Context, sub *subscription.Subscription) error {
	if sub == nil || sub.OwnerID == uuid.Nil {
		return ErrMissingOwnerID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs[sub.OwnerID] = cloneSubscription(*sub)
	return nil
}

func (m *Memory) GetSubscription(_ context.Context, ownerID uuid.UUID) (*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, ok := m.subs[ownerID]
	if !ok {
		return nil, subscription.ErrSubscriptionNotFound
	}
	out := cloneSubscription(sub)
	return &out, nil
}

// Insert stores rec. A zero ID is replaced with a new random one, which is returned.
func (m *Memory) Insert(_ context.Context, rec Record) (uuid.UUID, error) {
	if err := rec.validate(); err != nil {
		return uuid.Nil, err
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID] = rec
	return rec.ID, nil
}

// Archive marks a property as archived, removing it from live counts.
func (m *Memory) Archive(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return ErrRecordNotFound
	}
	if rec.Kind != plan.ResourceProperties {
		return ErrArchiveUnsupported
	}
	rec.ArchivedAt = &at
	m.records[id] = rec
	return nil
}

// Delete removes a resource of the given kind.
func (m *Memory) Delete(_ context.Context, res plan.Resource, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok || rec.Kind != res {
		return ErrRecordNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *Memory) CountLive(_ context.Context, ownerID uuid.UUID, res plan.Resource) (int64, error) {
	if !listable(res) {
		return 0, ErrUnknownResource
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.live(ownerID, res))), nil
}

func (m *Memory) ListIDsNewestFirst(_ context.Context, ownerID uuid.UUID, res plan.Resource, offset, limit int64) ([]uuid.UUID, error) {
	if !listable(res) {
		return nil, ErrUnknownResource
	}
	if err := checkWindow(offset, limit); err != nil {
		return nil, err
	}

	m.mu.RLock()
	recs := m.live(ownerID, res)
	m.mu.RUnlock()

	slices.SortFunc(recs, newestFirst)

	n := int64(len(recs))
	start := min(offset, n)
	end := min(start+limit, n)

	ids := make([]uuid.UUID, 0, end-start)
	for _, rec := range recs[start:end] {
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

func (m *Memory) CountDocuments(_ context.Context, ownerID uuid.UUID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, rec := range m.records {
		if rec.OwnerID == ownerID && rec.Kind == plan.ResourceDocuments {
			n++
		}
	}
	return n, nil
}

// live must be called with m.mu held.
func (m *Memory) live(ownerID uuid.UUID, res plan.Resource) []Record {
	var out []Record
	for _, rec := range m.records {
		if rec.OwnerID == ownerID && rec.Kind == res && rec.Live() {
			out = append(out, rec)
		}
	}
	return out
}

// newestFirst orders by creation time descending with the id as a tie-breaker,
// matching ORDER BY created_at DESC, id DESC in the SQL store.
func newestFirst(a, b Record) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(0, bytes.Compare(a.ID[:], b.ID[:]))
}

func cloneSubscription(s subscription.Subscription) subscription.Subscription {
	s.ExpiresAt = cloneTime(s.ExpiresAt)
	s.TrialEndsAt = cloneTime(s.TrialEndsAt)
	s.GracePeriodEndsAt = cloneTime(s.GracePeriodEndsAt)
	return s
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
