package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicItemCreated is the topic published when an Item is created.
const TopicItemCreated = "item.created"

// ItemCreatedEvent is emitted, best effort, after a new Item is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemCreated) or
// the Kafka topic configured in KAFKA_TOPIC.
type ItemCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID     string    `json:"item_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
