package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.BookAddedToCatalogEventType:
		return unmarshal[core.BookAddedToCatalog](storableEvent.PayloadJSON)

	case core.BookCopiesAddedEventType:
		return unmarshal[core.BookCopiesAdded](storableEvent.PayloadJSON)

	case core.BookDetailsUpdatedEventType:
		return unmarshal[core.BookDetailsUpdated](storableEvent.PayloadJSON)

	case core.BookRemovedFromCatalogEventType:
		return unmarshal[core.BookRemovedFromCatalog](storableEvent.PayloadJSON)

	case core.BorrowerRegisteredEventType:
		return unmarshal[core.BorrowerRegistered](storableEvent.PayloadJSON)

	case core.MembershipTierChangedEventType:
		return unmarshal[core.MembershipTierChanged](storableEvent.PayloadJSON)

	case core.FinePolicySetEventType:
		return unmarshal[core.FinePolicySet](storableEvent.PayloadJSON)

	case core.BookBorrowedEventType:
		return unmarshal[core.BookBorrowed](storableEvent.PayloadJSON)

	case core.BookReturnedEventType:
		return unmarshal[core.BookReturned](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshal[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
