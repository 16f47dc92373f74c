package infrastructure

import (
	"context"
	"sync"

	"github.com/fooddelivery/order-system/shared/events"
	"github.com/rs/zerolog/log"
)

var (
	_ events.Publisher  = (*MemoryEventBus)(nil)
	_ events.Subscriber = (*MemoryEventBus)(nil)
)

type memorySubscription struct {
	pattern events.Topic
	handler events.EventHandler
}

// MemoryEventBus is an in-process implementation of the event channel used in
// local mode and in tests. It keeps the channel's at-least-once contract
// simple: handler errors are logged and the event is dropped, never retried.
type MemoryEventBus struct {
	mux           sync.RWMutex
	subscriptions []memorySubscription
	closed        bool
}

// NewMemoryEventBus creates a new in-memory event bus
func NewMemoryEventBus() *MemoryEventBus {
	return &MemoryEventBus{}
}

// Subscribe registers a handler for every event whose topic matches the given
// pattern. An empty pattern subscribes to every topic.
func (b *MemoryEventBus) Subscribe(ctx context.Context, eventType string, handler events.EventHandler) error {
	pattern := events.Topic(eventType)
	if pattern == "" {
		pattern = "#"
	}

	b.mux.Lock()
	defer b.mux.Unlock()
	b.subscriptions = append(b.subscriptions, memorySubscription{
		pattern: pattern,
		handler: handler,
	})
	return nil
}

// Publish dispatches events synchronously to every matching subscription
func (b *MemoryEventBus) Publish(ctx context.Context, evts ...*events.Event) error {
	b.mux.RLock()
	if b.closed {
		b.mux.RUnlock()
		return nil
	}
	subscriptions := make([]memorySubscription, len(b.subscriptions))
	copy(subscriptions, b.subscriptions)
	b.mux.RUnlock()

	for _, event := range evts {
		for _, sub := range subscriptions {
			if !event.Topic.Matches(sub.pattern) {
				continue
			}
			if err := sub.handler.Handle(ctx, event.Clone()); err != nil {
				log.Warn().Err(err).
					Str("event_type", event.EventType).
					Str("aggregate_id", event.AggregateID.String()).
					Msg("event handler failed, dropping event")
			}
		}
	}
	return nil
}

// Close stops dispatching further events
func (b *MemoryEventBus) Close() error {
	b.mux.Lock()
	defer b.mux.Unlock()
	b.closed = true
	b.subscriptions = nil
	return nil
}
