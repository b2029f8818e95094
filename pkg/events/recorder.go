package events

import "golang.org/x/exp/slices"

// Recorder accumulates the events of one aggregate in the order they were
// recorded. E is the closed event type of the aggregate's module.
//
// The zero value is ready to use. A Recorder is not safe for concurrent use,
// the same as the aggregate embedding it.
type Recorder[E Event] struct {
	pending []E
}

// Record appends an event to the queue.
func (r *Recorder[E]) Record(e E) {
	r.pending = append(r.pending, e)
}

// Pending returns a copy of the queued events.
func (r *Recorder[E]) Pending() []E {
	return slices.Clone(r.pending)
}

// Len returns the number of queued events.
func (r *Recorder[E]) Len() int {
	return len(r.pending)
}

// Clear empties the queue.
func (r *Recorder[E]) Clear() {
	r.pending = nil
}

// Source is implemented by aggregates that record events. It is what the
// save path of a persistence adapter works with.
type Source interface {
	PendingEvents() []Event
	ClearEvents()
}

// Upcast converts a slice of module events to a slice of Event.
func Upcast[E Event](in []E) []Event {
	out := make([]Event, 0, len(in))
	for _, e := range in {
		out = append(out, e)
	}
	return out
}
