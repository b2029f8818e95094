// Package events implements the capture and dispatch of domain events.
//
// Aggregates record events in an embedded Recorder while their mutating
// methods run. Recording has no effect outside the aggregate. Persistence
// adapters hand the recorded events to a Publisher only after the state
// change has been committed, then clear the recorder.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable fact recorded by an aggregate mutation.
type Event interface {
	// ID uniquely identifies this occurrence of the event.
	ID() uuid.UUID

	// Name is the dotted event name, e.g. "budget.activated".
	Name() string

	AggregateID() uuid.UUID
	AggregateType() string

	// OccurredAt is the time of the mutation, always in UTC.
	OccurredAt() time.Time
}

// Meta holds the fields every event shares. Event types embed it and
// only add their payload fields and a Name method.
//
// The fields are unexported so that encoding an event as JSON only
// contains its payload.
type Meta struct {
	id            uuid.UUID
	aggregateID   uuid.UUID
	aggregateType string
	occurredAt    time.Time
}

// NewMeta returns the metadata for a new event of an aggregate.
func NewMeta(aggregateType string, aggregateID uuid.UUID, at time.Time) Meta {
	return Meta{
		id:            uuid.New(),
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    at.UTC(),
	}
}

func (m Meta) ID() uuid.UUID          { return m.id }
func (m Meta) AggregateID() uuid.UUID { return m.aggregateID }
func (m Meta) AggregateType() string  { return m.aggregateType }
func (m Meta) OccurredAt() time.Time  { return m.occurredAt }
