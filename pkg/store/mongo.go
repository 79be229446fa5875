package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/rentwise/accessgate/pkg/plan"
	"github.com/rentwise/accessgate/pkg/subscription"
)

var _ ReadWriter = (*Mongo)(nil)

// MongoConfig represents the configuration for the Mongo backend.
type MongoConfig struct {
	ConnectionURL   string        `env:"MONGODB_URL"`                                  // ConnectionURL is the URL of the database.
	Database        string        `env:"MONGODB_DATABASE" envDefault:"accessgate"`     // Database holds the subscription and resource collections.
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`     // ConnectTimeout is the timeout for connecting to the database.
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`       // MaxPoolSize is the maximum number of connections in the pool.
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`         // MinPoolSize is the minimum number of connections in the pool.
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"` // MaxConnIdleTime is how long a pooled connection may stay idle.
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`        // RetryAttempts is the number of attempts to connect.
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`       // RetryInterval is the delay between attempts.
}

// ConnectMongo creates a client and pings the primary, retrying on failure.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	var lastErr error
	for range max(cfg.RetryAttempts, 1) {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetMaxPoolSize(cfg.MaxPoolSize).
				SetMinPoolSize(cfg.MinPoolSize).
				SetMaxConnIdleTime(cfg.MaxConnIdleTime).
				SetRetryReads(true),
		)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				return client, nil
			}
			_ = client.Disconnect(context.WithoutCancel(ctx))
		}
		lastErr = err

		if err := sleep(ctx, cfg.RetryInterval); err != nil {
			return nil, errors.Join(ErrFailedToConnect, err)
		}
	}
	return nil, errors.Join(ErrFailedToConnect, lastErr)
}

// MongoHealthcheck returns a readiness probe for the client.
func MongoHealthcheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, nil); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

type mongoSubscription struct {
	OwnerID               string     `bson:"_id"`
	Plan                  string     `bson:"plan"`
	Status                string     `bson:"status,omitempty"`
	StartedAt             time.Time  `bson:"started_at"`
	ExpiresAt             *time.Time `bson:"expires_at,omitempty"`
	TrialEndsAt           *time.Time `bson:"trial_ends_at,omitempty"`
	GracePeriodEndsAt     *time.Time `bson:"grace_period_ends_at,omitempty"`
	ExternalTransactionID string     `bson:"external_transaction_id,omitempty"`
}

type mongoResource struct {
	ID         string     `bson:"_id"`
	OwnerID    string     `bson:"owner_id"`
	CreatedAt  time.Time  `bson:"created_at"`
	ArchivedAt *time.Time `bson:"archived_at,omitempty"`
}

// Mongo stores each resource kind in its own collection. Ids are kept as
// canonical uuid strings, whose lexical order matches byte order.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) subscriptions() *mongo.Collection {
	return m.db.Collection("subscriptions")
}

func (m *Mongo) collection(res plan.Resource) (*mongo.Collection, error) {
	switch res {
	case plan.ResourceProperties, plan.ResourceTenants, plan.ResourceDocuments:
		return m.db.Collection(string(res)), nil
	default:
		return nil, ErrUnknownResource
	}
}

// liveFilter matches live resources; a null or missing archived_at is live.
func liveFilter(ownerID uuid.UUID, res plan.Resource) bson.M {
	filter := bson.M{"owner_id": ownerID.String()}
	if res == plan.ResourceProperties {
		filter["archived_at"] = nil
	}
	return filter
}

// EnsureIndexes creates the indexes backing the ordered window query.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	for _, res := range []plan.Resource{plan.ResourceProperties, plan.ResourceTenants, plan.ResourceDocuments} {
		coll, _ := m.collection(res)
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Mongo) GetSubscription(ctx context.Context, ownerID uuid.UUID) (*subscription.Subscription, error) {
	var doc mongoSubscription
	err := m.subscriptions().FindOne(ctx, bson.M{"_id": ownerID.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, subscription.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &subscription.Subscription{
		OwnerID:               ownerID,
		Plan:                  plan.ID(doc.Plan),
		Status:                subscription.Status(doc.Status),
		StartedAt:             doc.StartedAt,
		ExpiresAt:             doc.ExpiresAt,
		TrialEndsAt:           doc.TrialEndsAt,
		GracePeriodEndsAt:     doc.GracePeriodEndsAt,
		ExternalTransactionID: doc.ExternalTransactionID,
	}, nil
}

func (m *Mongo) SaveSubscription(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil || sub.OwnerID == uuid.Nil {
		return ErrMissingOwnerID
	}

	startedAt := sub.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	doc := mongoSubscription{
		OwnerID:               sub.OwnerID.String(),
		Plan:                  string(sub.Plan),
		Status:                string(sub.Status),
		StartedAt:             startedAt,
		ExpiresAt:             sub.ExpiresAt,
		TrialEndsAt:           sub.TrialEndsAt,
		GracePeriodEndsAt:     sub.GracePeriodEndsAt,
		ExternalTransactionID: sub.ExternalTransactionID,
	}

	_, err := m.subscriptions().ReplaceOne(ctx, bson.M{"_id": doc.OwnerID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (m *Mongo) CountLive(ctx context.Context, ownerID uuid.UUID, res plan.Resource) (int64, error) {
	if !listable(res) {
		return 0, ErrUnknownResource
	}
	coll, _ := m.collection(res)
	return coll.CountDocuments(ctx, liveFilter(ownerID, res))
}

func (m *Mongo) ListIDsNewestFirst(ctx context.Context, ownerID uuid.UUID, res plan.Resource, offset, limit int64) ([]uuid.UUID, error) {
	if !listable(res) {
		return nil, ErrUnknownResource
	}
	if err := checkWindow(offset, limit); err != nil {
		return nil, err
	}
	if limit == 0 {
		return []uuid.UUID{}, nil
	}

	coll, _ := m.collection(res)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit).
		SetProjection(bson.M{"_id": 1})

	cur, err := coll.Find(ctx, liveFilter(ownerID, res), opts)
	if err != nil {
		return nil, err
	}

	var docs []mongoResource
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(docs))
	for _, d := range docs {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *Mongo) CountDocuments(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	coll, _ := m.collection(plan.ResourceDocuments)
	return coll.CountDocuments(ctx, bson.M{"owner_id": ownerID.String()})
}

func (m *Mongo) Insert(ctx context.Context, rec Record) (uuid.UUID, error) {
	if err := rec.validate(); err != nil {
		return uuid.Nil, err
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	coll, _ := m.collection(rec.Kind)
	_, err := coll.InsertOne(ctx, mongoResource{
		ID:         rec.ID.String(),
		OwnerID:    rec.OwnerID.String(),
		CreatedAt:  rec.CreatedAt,
		ArchivedAt: rec.ArchivedAt,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return rec.ID, nil
}

func (m *Mongo) Archive(ctx context.Context, id uuid.UUID, at time.Time) error {
	coll, _ := m.collection(plan.ResourceProperties)
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": bson.M{"archived_at": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, res plan.Resource, id uuid.UUID) error {
	coll, err := m.collection(res)
	if err != nil {
		return err
	}
	out, err := coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if out.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
