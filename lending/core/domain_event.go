package core

import (
	"time"
)

// DomainEvents is a slice of DomainEvent in sequence order.
type DomainEvents = []DomainEvent

// DomainEvent is a business fact. Its exported fields are the stored payload.
type DomainEvent interface {
	EventType() string
	HasOccurredAt() time.Time
}
