package infrastructure

import (
	"context"

	"github.com/fooddelivery/order-system/shared/events"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var _ events.Publisher = (*JournalingPublisher)(nil)

// JournalingPublisher decorates a Publisher with an EventStore so every
// published event is journaled before it goes out on the channel. Journal
// failures do not block publication.
type JournalingPublisher struct {
	store events.EventStore
	next  events.Publisher
}

// NewJournalingPublisher creates a new JournalingPublisher
func NewJournalingPublisher(store events.EventStore, next events.Publisher) *JournalingPublisher {
	return &JournalingPublisher{
		store: store,
		next:  next,
	}
}

// Publish journals the events and forwards them to the wrapped publisher
func (p *JournalingPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	if err := p.store.Append(ctx, evts...); err != nil {
		log.Warn().Err(err).Int("events", len(evts)).Msg("failed to journal events")
	}

	if err := p.next.Publish(ctx, evts...); err != nil {
		return errors.Wrap(err, "failed to publish events")
	}
	return nil
}
