package bus

import (
	"sync"

	"github.com/darkbluein/locale-store-service/internal/domain"
)

const subscriberBuffer = 16

type subscriber struct {
	targetID string
	ch       chan domain.Event
}

// UpdateBus is the in-process broadcast channel for STORE_UPDATE and
// INVENTORY_UPDATE events. Delivery is at-most-once: publish never blocks,
// a subscriber whose buffer is full loses the event.
type UpdateBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]*subscriber
}

func NewUpdateBus() *UpdateBus {
	return &UpdateBus{
		subs: make(map[string]map[int]*subscriber),
	}
}

func (b *UpdateBus) Publish(topic, targetID string, payload any) {
	event := domain.Event{
		Topic:    topic,
		TargetID: targetID,
		Payload:  payload,
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs[topic] {
		if sub.targetID != "" && sub.targetID != targetID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			// slow subscriber, drop
		}
	}
}

func (b *UpdateBus) Subscribe(topic, targetID string) (<-chan domain.Event, func()) {
	sub := &subscriber{
		targetID: targetID,
		ch:       make(chan domain.Event, subscriberBuffer),
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]*subscriber)
	}
	b.subs[topic][id] = sub
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[topic], id)
			b.mu.Unlock()
			close(sub.ch)
		})
	}

	return sub.ch, cancel
}
