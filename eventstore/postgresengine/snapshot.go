package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-lending/eventstore"
)

const (
	colProjectionType = "projection_type"
	colFilterHash     = "filter_hash"
	colData           = "data"
	colCreatedAt      = "created_at"
)

// SaveSnapshot upserts the snapshot keyed by projection type and filter hash.
func (es *EventStore) SaveSnapshot(ctx context.Context, snapshot eventstore.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return errors.Join(eventstore.ErrSavingSnapshotFailed, err)
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(es.snapshotTableName).
		Rows(goqu.Record{
			colProjectionType: snapshot.ProjectionType,
			colFilterHash:     snapshot.FilterHash,
			colSequenceNumber: snapshot.SequenceNumber,
			colData:           goqu.L(castJsonb, string(snapshot.Data)),
			colCreatedAt:      goqu.L(castTimestamp, snapshot.CreatedAt),
		}).
		OnConflict(goqu.DoUpdate(colProjectionType+", "+colFilterHash, goqu.Record{
			colSequenceNumber: goqu.L("EXCLUDED." + colSequenceNumber),
			colData:           goqu.L("EXCLUDED." + colData),
			colCreatedAt:      goqu.L("EXCLUDED." + colCreatedAt),
		}))

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return errors.Join(eventstore.ErrSavingSnapshotFailed, eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	start := time.Now()
	_, execErr := es.db.Exec(ctx, sqlQuery)
	es.logSQL(ctx, sqlQuery, "save snapshot", time.Since(start))

	if execErr != nil {
		es.instruments.Error(ctx, "failed to save snapshot", execErr, colProjectionType, snapshot.ProjectionType)
		return errors.Join(eventstore.ErrSavingSnapshotFailed, execErr)
	}

	return nil
}

// LoadSnapshot returns nil without error if no snapshot exists.
func (es *EventStore) LoadSnapshot(
	ctx context.Context,
	projectionType string,
	filterHash string,
) (*eventstore.Snapshot, error) {

	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.snapshotTableName).
		Select(colProjectionType, colFilterHash, colSequenceNumber, colData, colCreatedAt).
		Where(goqu.Ex{colProjectionType: projectionType, colFilterHash: filterHash})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := es.db.Query(ctx, sqlQuery)
	if queryErr != nil {
		es.instruments.Error(ctx, "failed to load snapshot", queryErr, colProjectionType, projectionType)
		return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, queryErr)
	}
	defer es.closeRows(ctx, rows)

	if !rows.Next() {
		es.instruments.SnapshotLookup(ctx, projectionType, false)

		if rowsErr := rows.Err(); rowsErr != nil {
			return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, rowsErr)
		}

		return nil, nil //nolint:nilnil
	}

	var snapshot eventstore.Snapshot
	var data []byte

	scanErr := rows.Scan(&snapshot.ProjectionType, &snapshot.FilterHash, &snapshot.SequenceNumber, &data, &snapshot.CreatedAt)
	if scanErr != nil {
		return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, eventstore.ErrScanningDBRowFailed, scanErr)
	}

	snapshot.Data = data
	es.instruments.SnapshotLookup(ctx, projectionType, true)

	return &snapshot, nil
}

// DeleteSnapshot removes the snapshot if it exists.
func (es *EventStore) DeleteSnapshot(ctx context.Context, projectionType string, filterHash string) error {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(es.snapshotTableName).
		Where(goqu.Ex{colProjectionType: projectionType, colFilterHash: filterHash})

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return errors.Join(eventstore.ErrDeletingSnapshotFailed, eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	if _, execErr := es.db.Exec(ctx, sqlQuery); execErr != nil {
		es.instruments.Error(ctx, "failed to delete snapshot", execErr, colProjectionType, projectionType)
		return errors.Join(eventstore.ErrDeletingSnapshotFailed, execErr)
	}

	return nil
}
