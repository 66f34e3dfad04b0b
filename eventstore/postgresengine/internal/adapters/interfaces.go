package adapters

import "context"

// DBAdapter is the part of a database handle the event store needs.
//
// ExecLocked runs query in its own transaction after taking the transaction scoped
// advisory lock named lockName, so statements sharing a lock name never overlap.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	ExecLocked(ctx context.Context, lockName string, query string) (DBResult, error)
}

type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DBResult interface {
	RowsAffected() (int64, error)
}
