package memoryengine

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-lending/eventstore"
)

// SaveSnapshot stores or replaces the snapshot for its projection type and filter hash.
func (es *EventStore) SaveSnapshot(ctx context.Context, snapshot eventstore.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return errors.Join(eventstore.ErrSavingSnapshotFailed, err)
	}

	if err := ctx.Err(); err != nil {
		return errors.Join(eventstore.ErrSavingSnapshotFailed, err)
	}

	es.snapshots.Add(snapshot.Key(), snapshot)
	es.instruments.Debug(ctx, "snapshot saved",
		"projection_type", snapshot.ProjectionType,
		"sequence_number", snapshot.SequenceNumber)

	return nil
}

// LoadSnapshot returns nil without error if no snapshot exists.
func (es *EventStore) LoadSnapshot(
	ctx context.Context,
	projectionType string,
	filterHash string,
) (*eventstore.Snapshot, error) {

	if err := ctx.Err(); err != nil {
		return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, err)
	}

	snapshot, ok := es.snapshots.Get(eventstore.SnapshotKey(projectionType, filterHash))
	es.instruments.SnapshotLookup(ctx, projectionType, ok)

	if !ok {
		return nil, nil //nolint:nilnil
	}

	return &snapshot, nil
}

// DeleteSnapshot removes the snapshot if it exists.
func (es *EventStore) DeleteSnapshot(ctx context.Context, projectionType string, filterHash string) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(eventstore.ErrDeletingSnapshotFailed, err)
	}

	es.snapshots.Remove(eventstore.SnapshotKey(projectionType, filterHash))

	return nil
}
