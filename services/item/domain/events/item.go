package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopicItemCreated is published through the outbox when an item is saved.
const TopicItemCreated = "item.created"

// ItemCreatedVersion is the current payload schema; bump it on breaking changes.
const ItemCreatedVersion = 1

// ItemCreatedEvent carries the saved row so the worker can warm the cache
// without reading Postgres.
type ItemCreatedEvent struct {
	EventID    uuid.UUID       `json:"event_id"`
	Version    int             `json:"version"`
	ItemID     int64           `json:"item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewItemCreated stamps a fresh event id for a saved item.
func NewItemCreated(itemID int64, name string, price decimal.Decimal, createdAt time.Time) ItemCreatedEvent {
	return ItemCreatedEvent{
		EventID:    uuid.New(),
		Version:    ItemCreatedVersion,
		ItemID:     itemID,
		Name:       name,
		Price:      price,
		OccurredAt: createdAt,
	}
}
