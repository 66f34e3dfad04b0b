// Package postgreswrapper creates a Postgres EventStore for integration tests.
//
// The tests run against the database in POSTGRES_TEST_DSN and are skipped when it is not set.
// ADAPTER_TYPE selects the driver: pgx.pool (default), sql.db or sqlx.db.
package postgreswrapper

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/eventstore/postgresengine"
	"github.com/AntonStoeckl/library-lending/lending/shell/config"
)

const (
	EnvTestDSN     = "POSTGRES_TEST_DSN"
	EnvAdapterType = "ADAPTER_TYPE"

	setupTimeout = 10 * time.Second
)

// Wrapper owns the connection and the EventStore built on top of it.
type Wrapper struct {
	es      *postgresengine.EventStore
	adapter string
}

func (w *Wrapper) EventStore() *postgresengine.EventStore {
	return w.es
}

func (w *Wrapper) AdapterType() string {
	return w.adapter
}

// New connects with the adapter from ADAPTER_TYPE, ensures the schema exists and empties the tables.
// The connection is closed when the test finishes.
func New(t testing.TB, options ...postgresengine.Option) *Wrapper {
	t.Helper()

	dsn := os.Getenv(EnvTestDSN)
	if dsn == "" {
		t.Skipf("%s is not set, skipping Postgres integration test", EnvTestDSN)
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	adapter := strings.ToLower(os.Getenv(EnvAdapterType))
	if adapter == "" {
		adapter = config.AdapterPGXPool
	}

	var es *postgresengine.EventStore
	var err error

	switch adapter {
	case config.AdapterPGXPool:
		pool, openErr := config.OpenPGXPool(ctx, dsn)
		require.NoError(t, openErr, "error connecting to DB pool in test setup")
		t.Cleanup(pool.Close)
		es, err = postgresengine.NewEventStoreFromPGXPool(pool, options...)

	case config.AdapterSQLDB:
		db, openErr := config.OpenSQLDB(ctx, dsn)
		require.NoError(t, openErr, "error connecting to DB in test setup")
		t.Cleanup(func() { _ = db.Close() })
		es, err = postgresengine.NewEventStoreFromSQLDB(db, options...)

	case config.AdapterSQLXDB:
		db, openErr := config.OpenSQLX(ctx, dsn)
		require.NoError(t, openErr, "error connecting to DB in test setup")
		t.Cleanup(func() { _ = db.Close() })
		es, err = postgresengine.NewEventStoreFromSQLX(db, options...)

	default:
		t.Fatalf("unsupported %s: %s", EnvAdapterType, adapter)
	}

	require.NoError(t, err, "creating the event store failed")
	require.NoError(t, es.CreateSchema(ctx), "creating the schema failed")
	require.NoError(t, es.Truncate(ctx), "cleaning up the tables failed")

	return &Wrapper{es: es, adapter: adapter}
}
