// Package memoryengine is an in-process event store with the same Query/Append contract as postgresengine.
//
// All events live in a single slice guarded by a mutex, which makes the compare-and-append in Append atomic.
// Snapshots are kept in a bounded LRU cache. The engine is meant for tests, demos and single-instance runs
// where durability is not required.
//
//	store, _ := memoryengine.NewEventStore(memoryengine.WithLogger(logger))
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package memoryengine
