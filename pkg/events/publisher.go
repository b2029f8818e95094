package events

import (
	"context"
	"errors"
	"fmt"
)

// Publisher hands a single event to its consumers.
//
// Publication is at-least-once: a failed save path may be retried by the
// caller and then publish an event again, so consumers must be idempotent.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, e Event) error

// Publish calls f(ctx, e).
func (f PublisherFunc) Publish(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// Discard is a Publisher that drops every event.
var Discard Publisher = PublisherFunc(func(context.Context, Event) error { return nil })

// PublishError is returned by a save path when the state change has been
// committed but at least one event could not be published.
type PublishError struct {
	Event       Event   // The event that failed
	Unpublished []Event // The failed event and all events after it, in order
	Err         error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("state committed, but publishing %s for %s %s failed: %v", e.Event.Name(), e.Event.AggregateType(), e.Event.AggregateID(), e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// PublishAll publishes events in order and stops at the first failure, so
// that consumers never observe a later event before an earlier one.
func PublishAll(ctx context.Context, p Publisher, evs []Event) error {
	for i, e := range evs {
		if err := p.Publish(ctx, e); err != nil {
			return &PublishError{
				Event:       e,
				Unpublished: evs[i:],
				Err:         err,
			}
		}
	}

	return nil
}

// Multi returns a Publisher that publishes every event to all publishers in
// the given order. All publishers are called even if one fails; the errors
// are joined.
func Multi(publishers ...Publisher) Publisher {
	return PublisherFunc(func(ctx context.Context, e Event) error {
		var errs []error
		for _, p := range publishers {
			if err := p.Publish(ctx, e); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
