package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicCartItemAdded is the event bus topic for CartItemAddedEvent.
const TopicCartItemAdded = "cart.item_added"

// CartItemAddedEvent is published after a line was inserted or incremented.
type CartItemAddedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	CartID     int64     `json:"cart_id"`
	CartItemID int64     `json:"cart_item_id"`
	ItemID     int64     `json:"item_id"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}
