package publisher

import (
	"context"
	"log/slog"

	"github.com/darkbluein/locale-store-service/internal/domain"
)

// EventMirror forwards update-bus events to Kafka so downstream services
// see the same change stream as live subscribers. Mirroring is best-effort:
// a write failure is logged and never propagates back to the mutation.
type EventMirror struct {
	bus       domain.UpdateBusPort
	publisher *DefaultKafkaPublisher
}

func NewEventMirror(bus domain.UpdateBusPort, publisher *DefaultKafkaPublisher) *EventMirror {
	return &EventMirror{
		bus:       bus,
		publisher: publisher,
	}
}

func (m *EventMirror) Run(ctx context.Context) {
	storeEvents, cancelStore := m.bus.Subscribe(domain.TopicStoreUpdate, "")
	defer cancelStore()
	inventoryEvents, cancelInventory := m.bus.Subscribe(domain.TopicInventoryUpdate, "")
	defer cancelInventory()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-storeEvents:
			m.forward(ctx, event)
		case event := <-inventoryEvents:
			m.forward(ctx, event)
		}
	}
}

func (m *EventMirror) forward(ctx context.Context, event domain.Event) {
	err := m.publisher.PublishStoreEvent(ctx, StoreEvent{
		Topic:   event.Topic,
		StoreID: event.TargetID,
		Payload: event.Payload,
	})
	if err != nil {
		slog.Error("kafka mirror publish failed", "topic", event.Topic, "store_id", event.TargetID, "error", err.Error())
	}
}
