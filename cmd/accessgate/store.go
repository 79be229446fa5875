package main

import (
	"context"
	"log/slog"

	"github.com/rentwise/accessgate/db"
	"github.com/rentwise/accessgate/internal/config"
	"github.com/rentwise/accessgate/pkg/httpserver"
	"github.com/rentwise/accessgate/pkg/logger"
	"github.com/rentwise/accessgate/pkg/store"
)

// openStore connects the configured backend and returns it with its
// readiness probes and a close func.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (store.ReadWriter, []httpserver.Probe, func(), error) {
	log = log.With(logger.Component("store"), slog.String("driver", string(cfg.StoreDriver)))

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := store.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.Postgres.AutoMigrate {
			if err := store.MigratePostgres(ctx, pool, db.Migrations, db.MigrationsDir, cfg.Postgres.MigrationsTable, log); err != nil {
				pool.Close()
				return nil, nil, nil, err
			}
		}
		log.InfoContext(ctx, "store connected")
		probes := []httpserver.Probe{{Name: "postgres", Check: store.PostgresHealthcheck(pool)}}
		return store.NewPostgres(pool), probes, pool.Close, nil

	case config.DriverMongo:
		client, err := store.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, nil, err
		}
		st := store.NewMongo(client.Database(cfg.Mongo.Database))
		if err := st.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, nil, nil, err
		}
		log.InfoContext(ctx, "store connected")
		probes := []httpserver.Probe{{Name: "mongo", Check: store.MongoHealthcheck(client)}}
		return st, probes, func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		log.WarnContext(ctx, "using in-memory store; data is lost on restart")
		return store.NewMemory(), nil, func() {}, nil
	}
}
