package postgresengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var ErrCreatingSchemaFailed = errors.New("creating schema failed")

// CreateSchema creates the events and snapshots tables and their indexes if they do not exist.
func (es *EventStore) CreateSchema(ctx context.Context) error {
	for _, statement := range es.schemaStatements() {
		if _, err := es.db.Exec(ctx, statement); err != nil {
			es.instruments.Error(ctx, "failed to create schema", err, logAttrQuery, statement)
			return errors.Join(ErrCreatingSchemaFailed, err)
		}
	}

	es.instruments.Operation(ctx, "schema ensured", "events_table", es.eventTableName, "snapshots_table", es.snapshotTableName)

	return nil
}

func (es *EventStore) schemaStatements() []string {
	events := pgx.Identifier{es.eventTableName}.Sanitize()
	snapshots := pgx.Identifier{es.snapshotTableName}.Sanitize()
	payloadIndex := pgx.Identifier{es.eventTableName + "_payload_idx"}.Sanitize()
	typeIndex := pgx.Identifier{es.eventTableName + "_event_type_idx"}.Sanitize()

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	sequence_number BIGSERIAL PRIMARY KEY,
	occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
	event_type TEXT NOT NULL,
	payload JSONB NOT NULL,
	metadata JSONB NOT NULL DEFAULT '{}'::jsonb
)`, events),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING gin (payload jsonb_path_ops)`, payloadIndex, events),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (event_type)`, typeIndex, events),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	projection_type TEXT NOT NULL,
	filter_hash TEXT NOT NULL,
	sequence_number BIGINT NOT NULL,
	data JSONB NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL,
	PRIMARY KEY (projection_type, filter_hash)
)`, snapshots),
	}
}

// Truncate removes all events and snapshots and restarts the sequence, it is meant for tests.
func (es *EventStore) Truncate(ctx context.Context) error {
	statement := fmt.Sprintf("TRUNCATE TABLE %s, %s RESTART IDENTITY",
		pgx.Identifier{es.eventTableName}.Sanitize(),
		pgx.Identifier{es.snapshotTableName}.Sanitize(),
	)

	if _, err := es.db.Exec(ctx, statement); err != nil {
		return err
	}

	return nil
}
