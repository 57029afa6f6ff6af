package events

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCartItemAddedEvent_JSONFieldNames(t *testing.T) {
	evt := CartItemAddedEvent{
		EventID:    uuid.New(),
		Version:    1,
		CartID:     3,
		CartItemID: 9,
		ItemID:     5,
		Quantity:   2,
		OccurredAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"event_id"`, `"cart_id":3`, `"cart_item_id":9`, `"item_id":5`, `"quantity":2`, `"occurred_at"`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("payload %s missing %s", b, key)
		}
	}
}
