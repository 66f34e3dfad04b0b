// Package snapshot adds incremental projection on top of any query handler.
//
// The QueryWrapper loads the last snapshot of a projection, queries only the events appended
// after it, folds them onto the snapshot with the query's ProjectionFunc and saves the result.
// A snapshot miss, or any failure along the way, falls back to the wrapped handler so that a
// broken snapshot never breaks a query.
//
//	wrapper, err := snapshot.NewQueryWrapper[topborrowedbooks.Query, topborrowedbooks.TopBorrowedBooks](
//		baseHandler,
//		eventStore,
//		topborrowedbooks.Project,
//		func(_ topborrowedbooks.Query) eventstore.Filter { return topborrowedbooks.BuildEventFilter() },
//		snapshot.WithLogging[topborrowedbooks.Query, topborrowedbooks.TopBorrowedBooks](logger),
//	)
//
// Snapshots are keyed by the query's SnapshotType and the hash of its filter.
package snapshot
