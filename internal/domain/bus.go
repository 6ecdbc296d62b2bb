package domain

// Topics broadcast on the update bus.
const (
	TopicStoreUpdate     = "STORE_UPDATE"
	TopicInventoryUpdate = "INVENTORY_UPDATE"
)

type Event struct {
	Topic    string
	TargetID string
	Payload  any
}

// UpdateBusPort is a process-wide, at-most-once, best-effort broadcast.
// Publish never blocks and never fails the mutation: a slow subscriber
// drops the event, a subscriber connected after publish never sees it.
type UpdateBusPort interface {
	Publish(topic, targetID string, payload any)
	// Subscribe returns a stream of events on the topic whose TargetID
	// equals targetID; empty targetID receives every event on the topic.
	// The cancel func detaches the subscriber and closes the stream.
	Subscribe(topic, targetID string) (<-chan Event, func())
}
