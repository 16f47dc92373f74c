package application

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/fooddelivery/order-system/delivery-service/domain"
	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// SimulatorOption configures the simulator
type SimulatorOption func(*Simulator)

// WithDelay fixes the simulated travel time. Tests use this to keep the
// courier fast and deterministic.
func WithDelay(delay time.Duration) SimulatorOption {
	return func(s *Simulator) {
		s.delay = func() time.Duration { return delay }
	}
}

// WithDelayRange draws the travel time uniformly from [min, max)
func WithDelayRange(min, max time.Duration) SimulatorOption {
	if max <= min {
		return WithDelay(min)
	}
	return func(s *Simulator) {
		s.delay = func() time.Duration {
			return min + time.Duration(rand.Int63n(int64(max-min)))
		}
	}
}

// Simulator stands in for real couriers. Every tracked delivery gets its own
// supervised task that publishes exactly one outcome event: DELIVERED when
// the simulated travel time elapses, FAILED when the delivery is canceled
// first. Shutdown stops the pool without inventing outcomes for deliveries
// still on the road.
type Simulator struct {
	deliveryRepository domain.DeliveryRepository
	eventPublisher     events.Publisher
	delay              func() time.Duration

	mu      sync.Mutex
	cancels map[models.ID]context.CancelFunc
	closed  bool

	wg       sync.WaitGroup
	poolCtx  context.Context
	stopPool context.CancelFunc
}

// NewSimulator creates a simulator. Call Shutdown to stop it.
func NewSimulator(deliveryRepository domain.DeliveryRepository, eventPublisher events.Publisher, opts ...SimulatorOption) *Simulator {
	poolCtx, stopPool := context.WithCancel(context.Background())
	s := &Simulator{
		deliveryRepository: deliveryRepository,
		eventPublisher:     eventPublisher,
		cancels:            make(map[models.ID]context.CancelFunc),
		poolCtx:            poolCtx,
		stopPool:           stopPool,
	}
	WithDelayRange(5*time.Second, 30*time.Second)(s)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Track starts a simulated courier for a delivery. Tracking the same order
// twice is a no-op while the first task is alive.
func (s *Simulator) Track(deliveryID, orderID models.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		log.Warn().Str("order_id", orderID.String()).Msg("simulator stopped, delivery not tracked")
		return
	}
	if _, exists := s.cancels[orderID]; exists {
		return
	}

	// Cancellation is per task and independent of pool shutdown, so a
	// canceled delivery fails while a shut-down pool just stops.
	taskCtx, cancel := context.WithCancel(context.Background())
	s.cancels[orderID] = cancel

	s.wg.Add(1)
	go s.run(taskCtx, deliveryID, orderID)
}

// Cancel aborts the in-flight delivery for an order, failing it. Returns
// false when no task is tracking the order.
func (s *Simulator) Cancel(orderID models.ID) bool {
	s.mu.Lock()
	cancel, exists := s.cancels[orderID]
	s.mu.Unlock()

	if !exists {
		return false
	}
	cancel()
	return true
}

// Shutdown stops accepting deliveries and waits for every task to exit
func (s *Simulator) Shutdown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.stopPool()
	s.wg.Wait()
}

func (s *Simulator) run(taskCtx context.Context, deliveryID, orderID models.ID) {
	defer s.wg.Done()
	defer s.untrack(orderID)

	timer := time.NewTimer(s.delay())
	defer timer.Stop()

	select {
	case <-s.poolCtx.Done():
		log.Info().Str("order_id", orderID.String()).Msg("simulator stopping, delivery left in progress")
		return
	case <-taskCtx.Done():
		s.finish(orderID, func(d *domain.Delivery) error { return d.Fail() })
	case <-timer.C:
		s.finish(orderID, func(d *domain.Delivery) error { return d.Complete() })
	}
}

func (s *Simulator) untrack(orderID models.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, exists := s.cancels[orderID]; exists {
		cancel()
		delete(s.cancels, orderID)
	}
}

// finish applies the outcome and publishes the single status event
func (s *Simulator) finish(orderID models.ID, outcome func(*domain.Delivery) error) {
	ctx := context.Background()

	delivery, err := s.deliveryRepository.FindByOrderID(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to load delivery for outcome")
		return
	}
	if delivery == nil {
		log.Error().Str("order_id", orderID.String()).Msg("tracked delivery vanished")
		return
	}

	if err := outcome(delivery); err != nil {
		if errors.Is(err, domain.ErrDeliveryFinished) {
			return
		}
		log.Error().Err(err).Str("delivery_id", delivery.ID.String()).Msg("failed to apply delivery outcome")
		return
	}

	if err := s.deliveryRepository.Save(ctx, delivery); err != nil {
		log.Error().Err(err).Str("delivery_id", delivery.ID.String()).Msg("failed to save delivery outcome")
		return
	}

	if err := s.eventPublisher.Publish(ctx, delivery.Events()...); err != nil {
		log.Error().Err(err).Str("delivery_id", delivery.ID.String()).Msg("failed to publish delivery outcome")
	}
	delivery.ClearEvents()

	log.Info().
		Str("delivery_id", delivery.ID.String()).
		Str("order_id", orderID.String()).
		Str("status", string(delivery.Status)).
		Msg("delivery finished")
}
