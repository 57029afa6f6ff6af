package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	pkgcache "github.com/ghuser/reactiveshop/pkg/cache"
	"github.com/ghuser/reactiveshop/pkg/logger"
	itemdomain "github.com/ghuser/reactiveshop/services/item/domain"
	"github.com/ghuser/reactiveshop/services/item/domain/models"
	"github.com/ghuser/reactiveshop/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/reactiveshop/services/item/domain/services"
)

// itemLoadTimeout bounds a shared database load once it is detached from
// the request that started it.
const itemLoadTimeout = 10 * time.Second

// ItemCache is the read-model cache used by ItemService. *pkgcache.ItemCache satisfies it.
type ItemCache interface {
	Get(ctx context.Context, itemID int64) (*pkgcache.CachedItem, error)
	Generation(ctx context.Context, itemID int64) (int64, error)
	Fill(ctx context.Context, item *pkgcache.CachedItem, gen int64) (bool, error)
	Invalidate(ctx context.Context, itemID int64) error
}

// NewItemInput carries the fields of one item to create.
type NewItemInput struct {
	Name  string
	Price decimal.Decimal
}

// ItemService orchestrates creation and retrieval of Items.
// Event publishing is handled by the repository layer (outbox pattern).
// Reads are served from Redis cache when available.
type ItemService struct {
	repo  repositories.ItemRepository
	cache ItemCache
	log   logger.Logger
	loads singleflight.Group
}

// NewItemService returns an ItemService wired with the given repository and cache.
// A nil cache disables caching.
func NewItemService(repo repositories.ItemRepository, itemCache ItemCache, log logger.Logger) *ItemService {
	return &ItemService{repo: repo, cache: itemCache, log: log}
}

// Create validates and persists an Item. The repository publishes ItemCreatedEvent.
func (s *ItemService) Create(ctx context.Context, name string, price decimal.Decimal) (*models.Item, error) {
	item, err := buildItem(name, price)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	return item, nil
}

// CreateBatch validates every input before storing any of them, then saves
// all items in one transaction.
func (s *ItemService) CreateBatch(ctx context.Context, inputs []NewItemInput) ([]*models.Item, error) {
	if len(inputs) == 0 {
		return nil, itemdomain.ErrEmptyBatch
	}

	items := make([]*models.Item, 0, len(inputs))
	for i, in := range inputs {
		item, err := buildItem(in.Name, in.Price)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}

	if err := s.repo.SaveBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("save items: %w", err)
	}
	return items, nil
}

// GetByID retrieves an Item using a read-through cache:
//  1. Check Redis first.
//  2. On a miss (or cache error), read the cache generation, then query
//     Postgres. Concurrent misses for the same id share one query.
//  3. Fill the cache asynchronously, guarded by that generation, so a load
//     that raced an Update never overwrites the invalidation.
//
// A caller whose ctx ends stops waiting; the shared load carries on for the
// callers still joined to it.
func (s *ItemService) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return cachedToItem(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
	}

	loaded := s.loads.DoChan(strconv.FormatInt(id, 10), func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), itemLoadTimeout)
		defer cancel()
		return s.load(loadCtx, id)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item %d: %w", id, ctx.Err())
	case res := <-loaded:
		if res.Err != nil {
			return nil, fmt.Errorf("get item %d: %w", id, res.Err)
		}
		item := *res.Val.(*models.Item)
		return &item, nil
	}
}

func (s *ItemService) load(ctx context.Context, id int64) (*models.Item, error) {
	if s.cache == nil {
		return s.repo.GetByID(ctx, id)
	}

	gen, genErr := s.cache.Generation(ctx, id)
	if genErr != nil {
		s.log.WarnContext(ctx, "item cache generation read failed", "item_id", id, "error", genErr)
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		go s.fill(context.WithoutCancel(ctx), ItemToCached(item), gen)
	}
	return item, nil
}

func (s *ItemService) fill(ctx context.Context, item *pkgcache.CachedItem, gen int64) {
	stored, err := s.cache.Fill(ctx, item, gen)
	switch {
	case err != nil:
		s.log.WarnContext(ctx, "item cache fill failed", "item_id", item.ID, "error", err)
	case !stored:
		s.log.DebugContext(ctx, "item cache fill skipped, item changed during load", "item_id", item.ID)
	}
}

// List returns a paginated slice of items plus total count.
func (s *ItemService) List(ctx context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	items, total, err := s.repo.FindAll(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	return items, total, nil
}

// Search returns items whose name contains c.Name (case-insensitive) and whose
// price equals c.Price. Zero-valued criteria are ignored.
func (s *ItemService) Search(ctx context.Context, c repositories.SearchCriteria) ([]*models.Item, error) {
	items, err := s.repo.Search(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return items, nil
}

// Update replaces name and price of an existing item, then invalidates its
// cache entry so fills from loads that started earlier are rejected.
func (s *ItemService) Update(ctx context.Context, id int64, name string, price decimal.Decimal) (*models.Item, error) {
	itemName, p, err := parseFields(name, price)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	item.Name = itemName
	item.Price = p

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(context.WithoutCancel(ctx), id); err != nil {
			s.log.WarnContext(ctx, "item cache invalidation failed", "item_id", id, "error", err)
		}
	}
	return item, nil
}

// ItemToCached converts a domain item to its cache read model.
func ItemToCached(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:        item.ID,
		Name:      item.Name.String(),
		Price:     item.Price,
		CreatedAt: item.CreatedAt,
	}
}

func cachedToItem(c *pkgcache.CachedItem) *models.Item {
	return &models.Item{
		ID:        c.ID,
		Name:      models.ItemName(c.Name),
		Price:     c.Price,
		CreatedAt: c.CreatedAt,
	}
}

// parseFields turns raw input into value objects, tagging failures with the
// catalog sentinel the HTTP layer maps to 422.
func parseFields(name string, price decimal.Decimal) (models.ItemName, decimal.Decimal, error) {
	itemName, err := models.NewItemName(name)
	if err == nil {
		err = domainsvcs.CheckName(itemName)
	}
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemName, err)
	}
	p, err := models.NewItemPrice(price)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemPrice, err)
	}
	return itemName, p, nil
}

func buildItem(name string, price decimal.Decimal) (*models.Item, error) {
	itemName, p, err := parseFields(name, price)
	if err != nil {
		return nil, err
	}
	item := models.NewItem(itemName, p)
	if err := domainsvcs.CheckNewItem(item); err != nil {
		return nil, fmt.Errorf("new item: %w", err)
	}
	return item, nil
}
