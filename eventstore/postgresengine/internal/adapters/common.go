package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// advisoryLockStatement blocks until the lock is free and holds it until commit or rollback.
const advisoryLockStatement = "SELECT pg_advisory_xact_lock(hashtext($1))"

var ErrAcquiringLockFailed = errors.New("acquiring advisory lock failed")

// execLockedInTx is shared by the sql.DB and sqlx.DB adapters, it owns tx from here on.
func execLockedInTx(ctx context.Context, tx *sql.Tx, lockName string, query string) (DBResult, error) {
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	if _, err := tx.ExecContext(ctx, advisoryLockStatement, lockName); err != nil {
		return nil, errors.Join(ErrAcquiringLockFailed, fmt.Errorf("lock %q: %w", lockName, err))
	}

	result, err := tx.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return committedResult(affected), nil
}

// stdRows adapts *sql.Rows, shared by the sql.DB and sqlx.DB adapters.
type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool {
	return s.rows.Next()
}

func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func (s *stdRows) Err() error {
	return s.rows.Err()
}

func (s *stdRows) Close() error {
	return s.rows.Close()
}

type stdResult struct {
	result sql.Result
}

func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}

type committedResult int64

func (c committedResult) RowsAffected() (int64, error) {
	return int64(c), nil
}
