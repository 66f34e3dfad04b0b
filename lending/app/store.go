package app

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-lending/eventstore/memoryengine"
	"github.com/AntonStoeckl/library-lending/eventstore/postgresengine"
	"github.com/AntonStoeckl/library-lending/lending/shell"
	"github.com/AntonStoeckl/library-lending/lending/shell/config"
	"github.com/AntonStoeckl/library-lending/lending/shell/snapshot"
)

var ErrUnsupportedStore = errors.New("unsupported store")

// EventStore is what the handlers need from an engine, both engines implement it.
type EventStore interface {
	shell.EventStore
	snapshot.SavesAndLoadsSnapshots
}

// SchemaCreator is implemented by engines with a schema to migrate.
type SchemaCreator interface {
	CreateSchema(ctx context.Context) error
}

// OpenEventStore creates the engine selected by cfg.Store.
// The returned close func releases the database connections, call it when done.
func OpenEventStore(ctx context.Context, cfg config.Config, obs Observability) (EventStore, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		es, err := memoryengine.NewEventStore(memoryOptions(cfg, obs)...)
		if err != nil {
			return nil, nil, err
		}

		return es, func() {}, nil

	case config.StorePostgres:
		return openPostgres(ctx, cfg, obs)
	}

	return nil, nil, ErrUnsupportedStore
}

func openPostgres(ctx context.Context, cfg config.Config, obs Observability) (EventStore, func(), error) {
	options := postgresOptions(cfg, obs)

	switch cfg.DBAdapter {
	case config.AdapterSQLDB:
		db, err := config.OpenSQLDB(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		es, err := postgresengine.NewEventStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return es, func() { _ = db.Close() }, nil

	case config.AdapterSQLXDB:
		db, err := config.OpenSQLX(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		es, err := postgresengine.NewEventStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return es, func() { _ = db.Close() }, nil
	}

	pool, err := config.OpenPGXPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}

	if cfg.PostgresReplicaDSN == "" {
		es, esErr := postgresengine.NewEventStoreFromPGXPool(pool, options...)
		if esErr != nil {
			pool.Close()
			return nil, nil, esErr
		}

		return es, pool.Close, nil
	}

	replica, err := config.OpenPGXPool(ctx, cfg.PostgresReplicaDSN)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	closeAll := func() {
		replica.Close()
		pool.Close()
	}

	es, err := postgresengine.NewEventStoreFromPGXPoolAndReplica(pool, replica, options...)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	return es, closeAll, nil
}

func memoryOptions(cfg config.Config, obs Observability) []memoryengine.Option {
	options := []memoryengine.Option{memoryengine.WithSnapshotCacheSize(cfg.SnapshotCacheSize)}

	if obs.Logger != nil {
		options = append(options, memoryengine.WithLogger(obs.Logger))
	}

	if obs.ContextualLogger != nil {
		options = append(options, memoryengine.WithContextualLogger(obs.ContextualLogger))
	}

	if obs.MetricsCollector != nil {
		options = append(options, memoryengine.WithMetrics(obs.MetricsCollector))
	}

	if obs.TracingCollector != nil {
		options = append(options, memoryengine.WithTracing(obs.TracingCollector))
	}

	return options
}

func postgresOptions(cfg config.Config, obs Observability) []postgresengine.Option {
	options := []postgresengine.Option{
		postgresengine.WithTableName(cfg.EventsTable),
		postgresengine.WithSnapshotTableName(cfg.SnapshotsTable),
	}

	if obs.Logger != nil {
		options = append(options, postgresengine.WithLogger(obs.Logger))
	}

	if obs.ContextualLogger != nil {
		options = append(options, postgresengine.WithContextualLogger(obs.ContextualLogger))
	}

	if obs.MetricsCollector != nil {
		options = append(options, postgresengine.WithMetrics(obs.MetricsCollector))
	}

	if obs.TracingCollector != nil {
		options = append(options, postgresengine.WithTracing(obs.TracingCollector))
	}

	return options
}
