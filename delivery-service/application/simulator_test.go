package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fooddelivery/order-system/delivery-service/domain"
	"github.com/fooddelivery/order-system/delivery-service/infrastructure"
	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturePublisher records every published event for assertions
type capturePublisher struct {
	mu     sync.Mutex
	events []*events.Event
}

func (p *capturePublisher) Publish(_ context.Context, evts ...*events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evts...)
	return nil
}

func (p *capturePublisher) published() []*events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*events.Event(nil), p.events...)
}

func trackedDelivery(t *testing.T, repo domain.DeliveryRepository) *domain.Delivery {
	t.Helper()
	delivery := domain.InitiateDelivery(
		models.GenerateUUID(),
		models.GenerateUUID(),
		models.GenerateUUID(),
	)
	delivery.ClearEvents()
	require.NoError(t, repo.Save(context.Background(), delivery))
	return delivery
}

func TestSimulator_CompletesDelivery(t *testing.T) {
	repo := infrastructure.NewMemoryDeliveryRepository()
	publisher := &capturePublisher{}
	sim := NewSimulator(repo, publisher, WithDelay(10*time.Millisecond))
	defer sim.Shutdown()

	delivery := trackedDelivery(t, repo)
	sim.Track(delivery.ID, delivery.OrderID)

	require.Eventually(t, func() bool {
		stored, err := repo.FindByOrderID(context.Background(), delivery.OrderID)
		return err == nil && stored != nil && stored.Status == domain.DeliveryStatusDelivered
	}, time.Second, 5*time.Millisecond)

	stored, err := repo.FindByOrderID(context.Background(), delivery.OrderID)
	require.NoError(t, err)
	assert.NotNil(t, stored.DeliveredAt)

	published := publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.DeliveryStatusUpdatedEvent, published[0].EventType)
	payload, ok := published[0].Data.(domain.DeliveryStatusUpdatedData)
	require.True(t, ok)
	assert.Equal(t, delivery.OrderID, payload.OrderID)
	assert.Equal(t, string(domain.DeliveryStatusDelivered), payload.Status)
}

func TestSimulator_CancelFailsDelivery(t *testing.T) {
	repo := infrastructure.NewMemoryDeliveryRepository()
	publisher := &capturePublisher{}
	sim := NewSimulator(repo, publisher, WithDelay(time.Hour))
	defer sim.Shutdown()

	delivery := trackedDelivery(t, repo)
	sim.Track(delivery.ID, delivery.OrderID)

	require.True(t, sim.Cancel(delivery.OrderID))

	require.Eventually(t, func() bool {
		stored, err := repo.FindByOrderID(context.Background(), delivery.OrderID)
		return err == nil && stored != nil && stored.Status == domain.DeliveryStatusFailed
	}, time.Second, 5*time.Millisecond)

	published := publisher.published()
	require.Len(t, published, 1)
	payload, ok := published[0].Data.(domain.DeliveryStatusUpdatedData)
	require.True(t, ok)
	assert.Equal(t, string(domain.DeliveryStatusFailed), payload.Status)

	// The task is gone, a second cancel has nothing to abort.
	require.Eventually(t, func() bool {
		return !sim.Cancel(delivery.OrderID)
	}, time.Second, 5*time.Millisecond)
}

func TestSimulator_ShutdownLeavesDeliveriesInProgress(t *testing.T) {
	repo := infrastructure.NewMemoryDeliveryRepository()
	publisher := &capturePublisher{}
	sim := NewSimulator(repo, publisher, WithDelay(time.Hour))

	delivery := trackedDelivery(t, repo)
	sim.Track(delivery.ID, delivery.OrderID)

	sim.Shutdown()

	stored, err := repo.FindByOrderID(context.Background(), delivery.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryStatusInProgress, stored.Status)
	assert.Empty(t, publisher.published())

	// Tracking after shutdown is refused.
	another := trackedDelivery(t, repo)
	sim.Track(another.ID, another.OrderID)
	assert.False(t, sim.Cancel(another.OrderID))
}

func TestSimulator_DuplicateTrackDispatchesOneCourier(t *testing.T) {
	repo := infrastructure.NewMemoryDeliveryRepository()
	publisher := &capturePublisher{}
	sim := NewSimulator(repo, publisher, WithDelay(10*time.Millisecond))
	defer sim.Shutdown()

	delivery := trackedDelivery(t, repo)
	sim.Track(delivery.ID, delivery.OrderID)
	sim.Track(delivery.ID, delivery.OrderID)

	require.Eventually(t, func() bool {
		return len(publisher.published()) > 0
	}, time.Second, 5*time.Millisecond)

	// Give a hypothetical second task time to fire before counting.
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, publisher.published(), 1)
}

func TestInitiateDelivery_IsIdempotentPerOrder(t *testing.T) {
	ctx := context.Background()
	repo := infrastructure.NewMemoryDeliveryRepository()
	publisher := &capturePublisher{}
	sim := NewSimulator(repo, publisher, WithDelay(time.Hour))
	defer sim.Shutdown()

	uc := NewInitiateDelivery(repo, publisher, sim)
	cmd := &InitiateDeliveryCommand{
		OrderID:      models.GenerateUUID().String(),
		RestaurantID: models.GenerateUUID().String(),
		UserID:       models.GenerateUUID().String(),
	}

	first, err := uc.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, string(domain.DeliveryStatusInProgress), first.Status)

	second, err := uc.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, first.DeliveryID, second.DeliveryID)

	// Only the first initiation announced a delivery.
	initiated := 0
	for _, evt := range publisher.published() {
		if evt.EventType == events.DeliveryInitiatedEvent {
			initiated++
		}
	}
	assert.Equal(t, 1, initiated)
}

func TestCancelDelivery_Execute(t *testing.T) {
	ctx := context.Background()
	repo := infrastructure.NewMemoryDeliveryRepository()
	publisher := &capturePublisher{}
	sim := NewSimulator(repo, publisher, WithDelay(time.Hour))
	defer sim.Shutdown()

	initiate := NewInitiateDelivery(repo, publisher, sim)
	cancel := NewCancelDelivery(repo, sim)

	cmd := &InitiateDeliveryCommand{
		OrderID:      models.GenerateUUID().String(),
		RestaurantID: models.GenerateUUID().String(),
		UserID:       models.GenerateUUID().String(),
	}
	_, err := initiate.Execute(ctx, cmd)
	require.NoError(t, err)

	require.NoError(t, cancel.Execute(ctx, &CancelDeliveryCommand{OrderID: cmd.OrderID}))

	orderID, err := models.NewID(cmd.OrderID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		stored, findErr := repo.FindByOrderID(ctx, orderID)
		return findErr == nil && stored != nil && stored.Status == domain.DeliveryStatusFailed
	}, time.Second, 5*time.Millisecond)

	// The delivery is finished, canceling again is rejected.
	require.Eventually(t, func() bool {
		return cancel.Execute(ctx, &CancelDeliveryCommand{OrderID: cmd.OrderID}) != nil
	}, time.Second, 5*time.Millisecond)

	err = cancel.Execute(ctx, &CancelDeliveryCommand{
		OrderID: models.GenerateUUID().String(),
	})
	assert.ErrorIs(t, err, domain.ErrDeliveryNotFound)
}
