package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentwise/accessgate/pkg/plan"
	"github.com/rentwise/accessgate/pkg/subscription"
)

var _ ReadWriter = (*Postgres)(nil)

// Postgres reads subscriptions and resources from PostgreSQL.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// Table names are fixed per kind; they are never built from input.
var pgTables = map[plan.Resource]string{
	plan.ResourceProperties: "properties",
	plan.ResourceTenants:    "tenants",
	plan.ResourceDocuments:  "documents",
}

var pgCountLive = map[plan.Resource]string{
	plan.ResourceProperties: `SELECT COUNT(*) FROM properties WHERE owner_id = $1 AND archived_at IS NULL`,
	plan.ResourceTenants:    `SELECT COUNT(*) FROM tenants WHERE owner_id = $1`,
}

var pgListNewestFirst = map[plan.Resource]string{
	plan.ResourceProperties: `
		SELECT id FROM properties
		WHERE owner_id = $1 AND archived_at IS NULL
		ORDER BY created_at DESC, id DESC
		OFFSET $2 LIMIT $3`,
	plan.ResourceTenants: `
		SELECT id FROM tenants
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		OFFSET $2 LIMIT $3`,
}

func (p *Postgres) GetSubscription(ctx context.Context, ownerID uuid.UUID) (*subscription.Subscription, error) {
	const query = `
		SELECT plan, COALESCE(status, ''), started_at, expires_at, trial_ends_at,
		       grace_period_ends_at, COALESCE(external_transaction_id, '')
		FROM subscriptions
		WHERE owner_id = $1`

	var (
		planID string
		status string
	)
	sub := subscription.Subscription{OwnerID: ownerID}
	err := p.db.QueryRow(ctx, query, ownerID).Scan(
		&planID,
		&status,
		&sub.StartedAt,
		&sub.ExpiresAt,
		&sub.TrialEndsAt,
		&sub.GracePeriodEndsAt,
		&sub.ExternalTransactionID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, subscription.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}

	sub.Plan = plan.ID(planID)
	sub.Status = subscription.Status(status)
	return &sub, nil
}

// SaveSubscription upserts the owner's record. Used by the purchase and
// downgrade flows; the engine itself never writes.
func (p *Postgres) SaveSubscription(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil || sub.OwnerID == uuid.Nil {
		return ErrMissingOwnerID
	}

	const query = `
		INSERT INTO subscriptions (owner_id, plan, status, started_at, expires_at,
		                           trial_ends_at, grace_period_ends_at, external_transaction_id)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, NULLIF($8, ''))
		ON CONFLICT (owner_id) DO UPDATE SET
			plan = EXCLUDED.plan,
			status = EXCLUDED.status,
			started_at = EXCLUDED.started_at,
			expires_at = EXCLUDED.expires_at,
			trial_ends_at = EXCLUDED.trial_ends_at,
			grace_period_ends_at = EXCLUDED.grace_period_ends_at,
			external_transaction_id = EXCLUDED.external_transaction_id,
			updated_at = NOW()`

	startedAt := sub.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}

	_, err := p.db.Exec(ctx, query,
		sub.OwnerID,
		string(sub.Plan),
		string(sub.Status),
		startedAt,
		sub.ExpiresAt,
		sub.TrialEndsAt,
		sub.GracePeriodEndsAt,
		sub.ExternalTransactionID,
	)
	return err
}

func (p *Postgres) CountLive(ctx context.Context, ownerID uuid.UUID, res plan.Resource) (int64, error) {
	query, ok := pgCountLive[res]
	if !ok {
		return 0, ErrUnknownResource
	}

	var n int64
	if err := p.db.QueryRow(ctx, query, ownerID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (p *Postgres) ListIDsNewestFirst(ctx context.Context, ownerID uuid.UUID, res plan.Resource, offset, limit int64) ([]uuid.UUID, error) {
	query, ok := pgListNewestFirst[res]
	if !ok {
		return nil, ErrUnknownResource
	}
	if err := checkWindow(offset, limit); err != nil {
		return nil, err
	}

	rows, err := p.db.Query(ctx, query, ownerID, offset, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func (p *Postgres) CountDocuments(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var n int64
	err := p.db.QueryRow(ctx, `SELECT COUNT(*) FROM documents WHERE owner_id = $1`, ownerID).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Insert stores rec and returns its id, generating one when rec.ID is zero.
func (p *Postgres) Insert(ctx context.Context, rec Record) (uuid.UUID, error) {
	if err := rec.validate(); err != nil {
		return uuid.Nil, err
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	var err error
	if rec.Kind == plan.ResourceProperties {
		_, err = p.db.Exec(ctx,
			`INSERT INTO properties (id, owner_id, created_at, archived_at) VALUES ($1, $2, $3, $4)`,
			rec.ID, rec.OwnerID, rec.CreatedAt, rec.ArchivedAt)
	} else {
		_, err = p.db.Exec(ctx,
			`INSERT INTO `+pgTables[rec.Kind]+` (id, owner_id, created_at) VALUES ($1, $2, $3)`,
			rec.ID, rec.OwnerID, rec.CreatedAt)
	}
	if err != nil {
		return uuid.Nil, err
	}
	return rec.ID, nil
}

// Archive marks a property as archived.
func (p *Postgres) Archive(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := p.db.Exec(ctx, `UPDATE properties SET archived_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes a resource of the given kind.
func (p *Postgres) Delete(ctx context.Context, res plan.Resource, id uuid.UUID) error {
	table, ok := pgTables[res]
	if !ok {
		return ErrUnknownResource
	}
	tag, err := p.db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}
