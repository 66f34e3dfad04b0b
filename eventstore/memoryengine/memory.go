package memoryengine

import (
	"context"
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/eventstore/internal/instrumentation"
)

const engineName = "memory"

type storedEvent struct {
	event   eventstore.StorableEvent
	payload map[string]any
}

// EventStore keeps events in memory, it is safe for concurrent use.
type EventStore struct {
	mu                sync.RWMutex
	events            []storedEvent
	snapshots         *lru.Cache[string, eventstore.Snapshot]
	snapshotCacheSize int
	instruments       instrumentation.Instruments
}

// NewEventStore creates an empty EventStore.
func NewEventStore(options ...Option) (*EventStore, error) {
	es := &EventStore{
		snapshotCacheSize: defaultSnapshotCacheSize,
		instruments:       instrumentation.Instruments{Engine: engineName},
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	snapshots, err := lru.New[string, eventstore.Snapshot](es.snapshotCacheSize)
	if err != nil {
		return nil, err
	}

	es.snapshots = snapshots

	return es, nil
}

// Query returns all events matching the filter in sequence order,
// together with the highest sequence number among them (0 if there are none).
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	observation, ctx := es.instruments.StartQuery(ctx)

	if err := ctx.Err(); err != nil {
		observation.Failed(instrumentation.ErrorTypeContextCanceled)
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	events := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range es.events[min(filter.SequenceNumberHigherThan(), uint(len(es.events))):] {
		if !matches(filter, stored) {
			continue
		}

		events = append(events, stored.event)
		maxSequenceNumber = stored.event.SequenceNumber
	}

	observation.Succeeded(events, maxSequenceNumber)

	return events, maxSequenceNumber, nil
}

// Append stores the events if the highest sequence number matching the filter is still expectedMaxSequenceNumber,
// otherwise it returns eventstore.ErrConcurrencyConflict and stores nothing.
// The filter's sequence number bound is ignored for the check.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)
	observation, ctx := es.instruments.StartAppend(ctx, allEvents, expectedMaxSequenceNumber)

	if err := ctx.Err(); err != nil {
		observation.Failed(instrumentation.ErrorTypeContextCanceled)
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	prepared := make([]storedEvent, 0, len(allEvents))

	for _, e := range allEvents {
		payload := make(map[string]any)
		if err := jsoniter.ConfigFastest.Unmarshal(e.PayloadJSON, &payload); err != nil {
			observation.Failed(instrumentation.ErrorTypeBuildEvent)
			es.instruments.Error(ctx, "failed to decode event payload", err, instrumentation.AttrEventType, e.EventType)

			return errors.Join(eventstore.ErrAppendingEventFailed, eventstore.ErrInvalidPayloadJSON, err)
		}

		prepared = append(prepared, storedEvent{event: e, payload: payload})
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	if current := es.currentMaxSequenceNumber(filter); current != expectedMaxSequenceNumber {
		observation.Conflicted(len(allEvents), 0, expectedMaxSequenceNumber)
		return eventstore.ErrConcurrencyConflict
	}

	for _, stored := range prepared {
		stored.event = stored.event.WithSequenceNumber(eventstore.MaxSequenceNumberUint(len(es.events) + 1))
		es.events = append(es.events, stored)
	}

	observation.Succeeded(len(prepared))

	return nil
}

// currentMaxSequenceNumber must be called with the lock held.
func (es *EventStore) currentMaxSequenceNumber(filter eventstore.Filter) eventstore.MaxSequenceNumberUint {
	for i := len(es.events) - 1; i >= 0; i-- {
		if matches(filter, es.events[i]) {
			return es.events[i].event.SequenceNumber
		}
	}

	return 0
}

// Len returns the number of stored events.
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.events)
}

func matches(filter eventstore.Filter, stored storedEvent) bool {
	if filter.MatchesAnyEvent() {
		return true
	}

	for _, item := range filter.Items() {
		if matchesItem(item, stored) {
			return true
		}
	}

	return false
}

func matchesItem(item eventstore.FilterItem, stored storedEvent) bool {
	if len(item.EventTypes()) > 0 && !containsEventType(item.EventTypes(), stored.event.EventType) {
		return false
	}

	predicates := item.Predicates()
	if len(predicates) == 0 {
		return true
	}

	for _, predicate := range predicates {
		matched := matchesPredicate(predicate, stored.payload)

		if item.AllPredicatesMustMatch() && !matched {
			return false
		}

		if !item.AllPredicatesMustMatch() && matched {
			return true
		}
	}

	return item.AllPredicatesMustMatch()
}

func containsEventType(eventTypes []eventstore.FilterEventTypeString, eventType string) bool {
	for _, candidate := range eventTypes {
		if candidate == eventType {
			return true
		}
	}

	return false
}

func matchesPredicate(predicate eventstore.FilterPredicate, payload map[string]any) bool {
	val, ok := payload[predicate.Key()].(string)

	return ok && val == predicate.Val()
}
