// Package eventstore holds the engine-agnostic building blocks of the lending event store:
// filters describing dynamic event streams, storable events, snapshots, consistency levels,
// and the dependency-free observability interfaces the engines report through.
//
// Engines (see memoryengine and postgresengine) implement a two-step protocol:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(core.BookBorrowedEventType, core.BookReturnedEventType).
//		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	// decide...
//	err = store.Append(ctx, filter, maxSeq, newEvent)
//
// Append fails with ErrConcurrencyConflict when any event matching the filter was stored after maxSeq.
package eventstore
