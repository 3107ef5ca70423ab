package events

import "time"

// DomainEvent is a fact emitted by the domain for downstream consumers.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}
