// Package postgresengine is the PostgreSQL engine of the event store.
//
// It runs on pgxpool.Pool (optionally with a read replica), sql.DB (lib/pq) or sqlx.DB.
// Queries are built with goqu, filter predicates become JSONB containment checks on the payload,
// and Append is a single INSERT ... SELECT guarded by the current max sequence number of the filtered stream.
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(pool, postgresengine.WithLogger(logger))
//	_ = store.CreateSchema(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
