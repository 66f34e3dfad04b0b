package eventstore

import (
	"encoding/json"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	ErrInvalidSnapshotJSON    = errors.New("snapshot json is not valid")
	ErrEmptyProjectionType    = errors.New("projection type must not be empty")
	ErrEmptyFilterHash        = errors.New("filter hash must not be empty")
	ErrSavingSnapshotFailed   = errors.New("saving snapshot failed")
	ErrLoadingSnapshotFailed  = errors.New("loading snapshot failed")
	ErrDeletingSnapshotFailed = errors.New("deleting snapshot failed")
)

// Snapshot is a serialized projection together with the sequence number of the last event folded into it.
// Snapshots are keyed by (ProjectionType, FilterHash), see Filter.Hash.
type Snapshot struct {
	ProjectionType string
	FilterHash     string
	SequenceNumber MaxSequenceNumberUint
	Data           json.RawMessage
	CreatedAt      time.Time
}

func (s Snapshot) Validate() error {
	if s.ProjectionType == "" {
		return ErrEmptyProjectionType
	}

	if s.FilterHash == "" {
		return ErrEmptyFilterHash
	}

	if !jsoniter.ConfigFastest.Valid(s.Data) {
		return ErrInvalidSnapshotJSON
	}

	return nil
}

// Key is the identity of the snapshot in a snapshot store.
func (s Snapshot) Key() string {
	return SnapshotKey(s.ProjectionType, s.FilterHash)
}

// SnapshotKey joins projection type and filter hash.
func SnapshotKey(projectionType string, filterHash string) string {
	return projectionType + ":" + filterHash
}

// BuildSnapshot builds and validates a Snapshot.
func BuildSnapshot(
	projectionType string,
	filterHash string,
	sequenceNumber MaxSequenceNumberUint,
	data json.RawMessage,
) (Snapshot, error) {

	snapshot := Snapshot{
		ProjectionType: projectionType,
		FilterHash:     filterHash,
		SequenceNumber: sequenceNumber,
		Data:           data,
		CreatedAt:      time.Now().UTC(),
	}

	if err := snapshot.Validate(); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}
