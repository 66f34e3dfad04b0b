package eventstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BuildStorableEvent_ErrorCases(t *testing.T) {
	validTime := time.Now()
	validPayloadJSON := []byte(`{"BookID": "b-1"}`)
	validMetadataJSON := []byte(`{"MessageID": "m-1"}`)

	tests := []struct {
		name         string
		eventType    string
		payloadJSON  []byte
		metadataJSON []byte
		expectedErr  error
	}{
		{name: "empty event type", eventType: "", payloadJSON: validPayloadJSON, metadataJSON: validMetadataJSON, expectedErr: ErrEmptyEventType},
		{name: "invalid payload JSON", eventType: "BookBorrowed", payloadJSON: []byte(`{"invalid": json}`), metadataJSON: validMetadataJSON, expectedErr: ErrInvalidPayloadJSON},
		{name: "empty payload JSON", eventType: "BookBorrowed", payloadJSON: []byte(``), metadataJSON: validMetadataJSON, expectedErr: ErrInvalidPayloadJSON},
		{name: "invalid metadata JSON", eventType: "BookBorrowed", payloadJSON: validPayloadJSON, metadataJSON: []byte(`{"invalid": json}`), expectedErr: ErrInvalidMetadataJSON},
		{name: "nil metadata JSON", eventType: "BookBorrowed", payloadJSON: validPayloadJSON, metadataJSON: nil, expectedErr: ErrInvalidMetadataJSON},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildStorableEvent(tc.eventType, validTime, tc.payloadJSON, tc.metadataJSON)

			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_BuildStorableEventWithEmptyMetadata(t *testing.T) {
	// arrange
	occurredAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	// act
	event, err := BuildStorableEventWithEmptyMetadata("BookBorrowed", occurredAt, []byte(`{"BookID":"b-1"}`))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "BookBorrowed", event.EventType)
	assert.Equal(t, occurredAt, event.OccurredAt)
	assert.JSONEq(t, `{}`, string(event.MetadataJSON))
	assert.Equal(t, uint(0), event.SequenceNumber)
	assert.Equal(t, uint(9), event.WithSequenceNumber(9).SequenceNumber)
}

func Test_BuildSnapshot(t *testing.T) {
	t.Run("valid snapshot", func(t *testing.T) {
		snapshot, err := BuildSnapshot("TopBorrowedBooks", "abc", 12, []byte(`{"books":[]}`))

		require.NoError(t, err)
		assert.Equal(t, "TopBorrowedBooks:abc", snapshot.Key())
		assert.Equal(t, uint(12), snapshot.SequenceNumber)
	})

	t.Run("rejects missing projection type", func(t *testing.T) {
		_, err := BuildSnapshot("", "abc", 1, []byte(`{}`))
		assert.ErrorIs(t, err, ErrEmptyProjectionType)
	})

	t.Run("rejects missing filter hash", func(t *testing.T) {
		_, err := BuildSnapshot("TopBorrowedBooks", "", 1, []byte(`{}`))
		assert.ErrorIs(t, err, ErrEmptyFilterHash)
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		_, err := BuildSnapshot("TopBorrowedBooks", "abc", 1, []byte(`{`))
		assert.ErrorIs(t, err, ErrInvalidSnapshotJSON)
	})
}

func Test_GetConsistencyLevel(t *testing.T) {
	assert.Equal(t, StrongConsistency, GetConsistencyLevel(t.Context()))
	assert.Equal(t, EventualConsistency, GetConsistencyLevel(WithEventualConsistency(t.Context())))
	assert.Equal(t, StrongConsistency, GetConsistencyLevel(WithStrongConsistency(WithEventualConsistency(t.Context()))))
	assert.Equal(t, "eventual", EventualConsistency.String())
}
