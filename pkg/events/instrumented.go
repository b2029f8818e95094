package events

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// Instrumented wraps a Publisher and counts published events by name and
// outcome.
type Instrumented struct {
	next      Publisher
	published *prometheus.CounterVec
}

// NewInstrumented wraps next and registers its counter with reg.
func NewInstrumented(next Publisher, reg prometheus.Registerer) (*Instrumented, error) {
	published := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domain_events_published_total",
			Help: "Number of domain events handed to publishers, by event name and outcome",
		},
		[]string{"event", "outcome"},
	)

	if err := reg.Register(published); err != nil {
		return nil, err
	}

	return &Instrumented{next: next, published: published}, nil
}

func (i *Instrumented) Publish(ctx context.Context, e Event) error {
	err := i.next.Publish(ctx, e)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	i.published.WithLabelValues(e.Name(), outcome).Inc()

	return err
}

// Counter exposes the underlying counter vector.
func (i *Instrumented) Counter() *prometheus.CounterVec {
	return i.published
}
