package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// ItemCacheTTL bounds how long an item read model may be served from Redis.
const ItemCacheTTL = 24 * time.Hour

// CachedItem is the item read model stored as a Redis hash.
type CachedItem struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
}

// fillScript writes the hash only if the item's generation still equals
// ARGV[1]. Invalidate bumps the generation, so a fill that loaded its row
// before an update cannot land after that update's invalidation.
var fillScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[2]) or '0')
if current ~= tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'id', ARGV[2], 'name', ARGV[3], 'price', ARGV[4], 'created_at', ARGV[5])
redis.call('EXPIRE', KEYS[1], ARGV[6])
return 1
`)

// ItemCache is the generation-guarded item read model.
//
// Readers take Generation before loading from the database and pass it to
// Fill; writers call Invalidate after committing.
type ItemCache struct {
	rdb redis.Cmdable
}

// NewItemCache returns an ItemCache over rdb.
func NewItemCache(rdb redis.Cmdable) *ItemCache {
	return &ItemCache{rdb: rdb}
}

// Get returns the cached item, or redis.Nil on a miss.
func (c *ItemCache) Get(ctx context.Context, itemID int64) (*CachedItem, error) {
	vals, err := c.rdb.HGetAll(ctx, ItemKey(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get item %d: %w", itemID, err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}
	return parseCachedItem(vals)
}

// Generation returns how many times the item has been invalidated.
func (c *ItemCache) Generation(ctx context.Context, itemID int64) (int64, error) {
	gen, err := c.rdb.Get(ctx, GenerationKey(itemID)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("cache generation item %d: %w", itemID, err)
	}
	return gen, nil
}

// Fill stores item if no invalidation happened since gen was read. It
// reports whether the write landed.
func (c *ItemCache) Fill(ctx context.Context, item *CachedItem, gen int64) (bool, error) {
	n, err := fillScript.Run(ctx, c.rdb,
		[]string{ItemKey(item.ID), GenerationKey(item.ID)},
		gen,
		item.ID,
		item.Name,
		item.Price.String(),
		item.CreatedAt.UTC().Format(time.RFC3339Nano),
		int64(ItemCacheTTL/time.Second),
	).Int()
	if err != nil {
		return false, fmt.Errorf("cache fill item %d: %w", item.ID, err)
	}
	return n == 1, nil
}

// Invalidate drops the cached item and bumps its generation so that fills
// started earlier are rejected.
func (c *ItemCache) Invalidate(ctx context.Context, itemID int64) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(itemID))
		pipe.Expire(ctx, GenerationKey(itemID), ItemCacheTTL)
		pipe.Del(ctx, ItemKey(itemID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache invalidate item %d: %w", itemID, err)
	}
	return nil
}

// ItemKey is the hash holding an item. The braces keep it in the same
// cluster slot as GenerationKey.
func ItemKey(itemID int64) string {
	return "item:{" + strconv.FormatInt(itemID, 10) + "}"
}

// GenerationKey is the counter bumped by Invalidate.
func GenerationKey(itemID int64) string {
	return ItemKey(itemID) + ":gen"
}

func parseCachedItem(vals map[string]string) (*CachedItem, error) {
	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	price, err := decimal.NewFromString(vals["price"])
	if err != nil {
		return nil, fmt.Errorf("cache parse price: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	return &CachedItem{ID: id, Name: vals["name"], Price: price, CreatedAt: createdAt}, nil
}
