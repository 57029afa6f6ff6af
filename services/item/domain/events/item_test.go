package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/reactiveshop/services/item/domain/events"
)

func TestNewItemCreated(t *testing.T) {
	at := time.Date(2025, 3, 2, 18, 30, 0, 0, time.UTC)
	a := events.NewItemCreated(12, "Hot and sour soup", decimal.RequireFromString("4.25"), at)
	b := events.NewItemCreated(12, "Hot and sour soup", decimal.RequireFromString("4.25"), at)

	assert.NotEqual(t, uuid.Nil, a.EventID)
	assert.NotEqual(t, a.EventID, b.EventID, "each publish gets its own id")
	assert.Equal(t, events.ItemCreatedVersion, a.Version)
	assert.Equal(t, at, a.OccurredAt)
}

// Prices travel as JSON strings so the worker never sees float rounding.
func TestItemCreatedEvent_PriceIsAStringOnTheWire(t *testing.T) {
	evt := events.NewItemCreated(3, "Jasmine tea", decimal.RequireFromString("2.10"), time.Now().UTC())

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2.1", raw["price"])
	assert.EqualValues(t, 3, raw["item_id"])
	assert.Contains(t, raw, "occurred_at")
}

func TestItemCreatedEvent_DecodesOutboxPayload(t *testing.T) {
	payload := `{"event_id":"550e8400-e29b-41d4-a716-446655440001","version":1,"item_id":3,` +
		`"name":"Jasmine tea","price":"110.00","occurred_at":"2025-01-15T12:00:00Z"}`

	var evt events.ItemCreatedEvent
	require.NoError(t, json.Unmarshal([]byte(payload), &evt))

	assert.Equal(t, int64(3), evt.ItemID)
	assert.True(t, evt.Price.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, "item.created", events.TopicItemCreated)
}
