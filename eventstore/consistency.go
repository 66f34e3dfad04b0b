package eventstore

import "context"

// ConsistencyLevel tells an engine whether a read may be served by a replica.
type ConsistencyLevel int

const (
	// StrongConsistency reads from the primary, command handlers must use it for their read-decide-append cycle.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica and is meant for read-only queries.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key holding the ConsistencyLevel.
const ConsistencyLevelKey contextKey = "eventstore.consistency_level"

func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel returns the ConsistencyLevel of ctx, StrongConsistency if none was set.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
