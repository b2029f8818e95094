package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/events"
	"github.com/google/uuid"
)

// Envelope is the message body of a published domain event. Payload holds
// the event specific fields.
type Envelope struct {
	EventID       uuid.UUID       `json:"eventId"`
	EventType     string          `json:"eventType"`
	AggregateID   uuid.UUID       `json:"aggregateId"`
	AggregateType string          `json:"aggregateType"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps an event.
func NewEnvelope(e events.Event) (*Envelope, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal payload of %s: %w", e.Name(), err)
	}

	return &Envelope{
		EventID:       e.ID(),
		EventType:     e.Name(),
		AggregateID:   e.AggregateID(),
		AggregateType: e.AggregateType(),
		OccurredAt:    e.OccurredAt().UTC(),
		Payload:       payload,
	}, nil
}

// ToJSON converts the envelope to JSON bytes
func (m *Envelope) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EnvelopeFromJSON creates an envelope from JSON bytes
func EnvelopeFromJSON(data []byte) (*Envelope, error) {
	var msg Envelope
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
