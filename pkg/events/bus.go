package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
	"golang.org/x/sync/errgroup"
)

// Handler consumes a published event.
type Handler func(ctx context.Context, e Event) error

type subscription struct {
	id      uint64
	pattern string
	handler Handler
}

// Bus is an in-process Publisher. Handlers subscribe to event names with
// glob patterns, e.g. "budget.*" or "*".
//
// All handlers matching an event run concurrently. Publish waits for all
// of them and returns their errors joined.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription

	// Maximum number of handlers running at once for one event. Zero or
	// less means no limit.
	concurrency int
}

// NewBus creates a Bus that runs at most concurrency handlers at once per
// event. Zero or less means no limit.
func NewBus(concurrency int) *Bus {
	return &Bus{concurrency: concurrency}
}

// Subscribe registers a handler for all events whose name matches pattern.
// The returned function removes the subscription.
func (b *Bus) Subscribe(pattern string, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, pattern: pattern, handler: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// HandlerCount returns the number of handlers an event with the given name
// would be dispatched to.
func (b *Bus) HandlerCount(name string) int {
	return len(b.matching(name))
}

func (b *Bus) matching(name string) []subscription {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var matched []subscription
	for _, s := range b.subs {
		if glob.Glob(s.pattern, name) {
			matched = append(matched, s)
		}
	}
	return matched
}

// Publish dispatches the event to every matching handler. An event without
// subscribers is not an error.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	subs := b.matching(e.Name())
	if len(subs) == 0 {
		return nil
	}

	var (
		mu   sync.Mutex
		errs []error
	)

	g, ctx := errgroup.WithContext(ctx)
	if b.concurrency > 0 {
		g.SetLimit(b.concurrency)
	}

	for _, s := range subs {
		g.Go(func() error {
			if err := s.handler(ctx, e); err != nil {
				log.Error().
					Str("event", e.Name()).
					Str("eventId", e.ID().String()).
					Str("subscription", s.pattern).
					Err(err).
					Msg("event handler failed")

				mu.Lock()
				errs = append(errs, fmt.Errorf("handler for %q: %w", s.pattern, err))
				mu.Unlock()
			}

			// Handler errors are collected, not returned. Returning them
			// would cancel the context of the other handlers.
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}
