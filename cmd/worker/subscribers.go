package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/reactiveshop/pkg/app"
	"github.com/ghuser/reactiveshop/pkg/cache"
	"github.com/ghuser/reactiveshop/pkg/events"
	"github.com/ghuser/reactiveshop/pkg/logger"
	cartEvents "github.com/ghuser/reactiveshop/services/cart/domain/events"
	itemEvents "github.com/ghuser/reactiveshop/services/item/domain/events"
)

// cacheFiller is the part of *cache.ItemCache the item.created handler needs.
type cacheFiller interface {
	Fill(ctx context.Context, item *cache.CachedItem, gen int64) (bool, error)
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	added, err := otel.Meter("reactiveshop/worker").Int64Counter(
		"cart_items_added_total",
		metric.WithDescription("Units added to carts"),
	)
	if err != nil {
		return fmt.Errorf("create cart counter: %w", err)
	}

	subs := map[string]events.Handler{
		itemEvents.TopicItemCreated:   handleItemCreated(cache.NewItemCache(a.Redis.Client()), a.Logger),
		cartEvents.TopicCartItemAdded: handleCartItemAdded(added, a.Logger),
	}

	topics := make([]string, 0, len(subs))
	for topic, h := range subs {
		errCh, err := a.EventBus.Subscribe(ctx, topic, h)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		// Drain subscriber errors in background so the channel never blocks.
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
		topics = append(topics, topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleItemCreated warms the Redis read model so GetByID is served from
// cache. A new item starts at generation 0; if an update has already
// invalidated it, the fill is rejected and the stale payload is dropped.
// Cache failures are logged, never retried.
func handleItemCreated(c cacheFiller, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt itemEvents.ItemCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return fmt.Errorf("decode %s: %w", itemEvents.TopicItemCreated, err)
		}

		stored, err := c.Fill(ctx, &cache.CachedItem{
			ID:        evt.ItemID,
			Name:      evt.Name,
			Price:     evt.Price,
			CreatedAt: evt.OccurredAt,
		}, 0)
		switch {
		case err != nil:
			log.WarnContext(ctx, "cache warm failed for item.created", "item_id", evt.ItemID, "error", err)
		case !stored:
			log.InfoContext(ctx, "cache warm skipped, item already updated", "item_id", evt.ItemID)
		default:
			log.InfoContext(ctx, "cache warmed", "item_id", evt.ItemID)
		}
		return nil
	}
}

// handleCartItemAdded counts units added to carts.
func handleCartItemAdded(added metric.Int64Counter, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt cartEvents.CartItemAddedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return fmt.Errorf("decode %s: %w", cartEvents.TopicCartItemAdded, err)
		}

		added.Add(ctx, 1, metric.WithAttributes(attribute.Int64("item_id", evt.ItemID)))
		log.InfoContext(ctx, "cart item added",
			"cart_id", evt.CartID,
			"item_id", evt.ItemID,
			"quantity", evt.Quantity,
		)
		return nil
	}
}
