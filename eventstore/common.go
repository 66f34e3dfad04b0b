package eventstore

import (
	"errors"
)

var (
	// ErrEmptyEventsTableName is returned when an empty events table name is supplied.
	ErrEmptyEventsTableName = errors.New("events table name must not be empty")

	// ErrEmptySnapshotsTableName is returned when an empty snapshots table name is supplied.
	ErrEmptySnapshotsTableName = errors.New("snapshots table name must not be empty")

	// ErrNilDatabaseConnection is returned when a nil database connection is supplied.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrConcurrencyConflict is returned by Append when the dynamic event stream changed after it was queried.
	ErrConcurrencyConflict = errors.New("concurrency conflict: no rows were affected")

	ErrBuildingQueryFailed         = errors.New("building query failed")
	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")
	ErrAppendingEventFailed        = errors.New("appending the event failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
	ErrNoEventsToAppend            = errors.New("at least one event must be supplied")
)

// MaxSequenceNumberUint is the highest sequence number of a "dynamic event stream" at the time it was queried.
type MaxSequenceNumberUint = uint
