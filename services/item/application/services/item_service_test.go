package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/reactiveshop/pkg/cache"
	"github.com/ghuser/reactiveshop/pkg/config"
	"github.com/ghuser/reactiveshop/pkg/logger"
	itemdomain "github.com/ghuser/reactiveshop/services/item/domain"
	"github.com/ghuser/reactiveshop/services/item/domain/models"
	"github.com/ghuser/reactiveshop/services/item/domain/repositories"
)

type memRepo struct {
	mu      sync.Mutex
	nextID  int64
	items   map[int64]*models.Item
	gets    int
	gate    chan struct{} // when set, GetByID waits for it
	entered chan struct{} // when set, GetByID signals on entry
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[int64]*models.Item{}}
}

func (r *memRepo) Save(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	item.ID = r.nextID
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memRepo) SaveBatch(ctx context.Context, items []*models.Item) error {
	for _, it := range items {
		if err := r.Save(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	if r.entered != nil {
		select {
		case r.entered <- struct{}{}:
		default:
		}
	}
	if r.gate != nil {
		<-r.gate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	it, ok := r.items[id]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *memRepo) FindAll(_ context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted()
	end := min(opts.Offset+opts.Limit, len(all))
	if opts.Offset >= len(all) {
		return nil, len(all), nil
	}
	return all[opts.Offset:end], len(all), nil
}

func (r *memRepo) Search(_ context.Context, c repositories.SearchCriteria) ([]*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Item
	for _, it := range r.sorted() {
		if c.Name != "" && !strings.Contains(strings.ToUpper(it.Name.String()), strings.ToUpper(c.Name)) {
			continue
		}
		if !c.Price.IsZero() && !c.Price.Equal(it.Price) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return itemdomain.ErrItemNotFound
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memRepo) sorted() []*models.Item {
	out := make([]*models.Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type memCache struct {
	mu       sync.Mutex
	entries  map[int64]*pkgcache.CachedItem
	gens     map[int64]int64
	fillGate chan struct{} // when set, Fill waits for it
	fills    chan bool     // outcome of every Fill
}

func newMemCache() *memCache {
	return &memCache{
		entries: map[int64]*pkgcache.CachedItem{},
		gens:    map[int64]int64{},
		fills:   make(chan bool, 16),
	}
}

func (c *memCache) Get(_ context.Context, id int64) (*pkgcache.CachedItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return nil, redis.Nil
	}
	return e, nil
}

func (c *memCache) Generation(_ context.Context, id int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[id], nil
}

func (c *memCache) Fill(_ context.Context, item *pkgcache.CachedItem, gen int64) (bool, error) {
	if c.fillGate != nil {
		<-c.fillGate
	}
	c.mu.Lock()
	stored := c.gens[item.ID] == gen
	if stored {
		c.entries[item.ID] = item
	}
	c.mu.Unlock()
	c.fills <- stored
	return stored, nil
}

func (c *memCache) Invalidate(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[id]++
	delete(c.entries, id)
	return nil
}

func (c *memCache) put(item *pkgcache.CachedItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[item.ID] = item
}

func (c *memCache) has(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

func waitFill(t *testing.T, c *memCache) bool {
	t.Helper()
	select {
	case stored := <-c.fills:
		return stored
	case <-time.After(time.Second):
		t.Fatal("cache fill did not run")
		return false
	}
}

func testLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func TestItemService_Create(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		price   string
		wantErr error
	}{
		{"valid", "Pizza", "9.50", nil},
		{"empty name", "", "1", itemdomain.ErrInvalidItemName},
		{"padded name", " Pizza ", "1", itemdomain.ErrInvalidItemName},
		{"negative price", "Pizza", "-1", itemdomain.ErrInvalidItemPrice},
		{"sub-cent price", "Pizza", "1.001", itemdomain.ErrInvalidItemPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewItemService(newMemRepo(), nil, testLogger())
			item, err := svc.Create(context.Background(), tt.in, decimal.RequireFromString(tt.price))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if item.ID == 0 {
				t.Fatal("expected storage-assigned id")
			}
		})
	}
}

func TestItemService_CreateBatchValidatesAllFirst(t *testing.T) {
	repo := newMemRepo()
	svc := NewItemService(repo, nil, testLogger())

	_, err := svc.CreateBatch(context.Background(), []NewItemInput{
		{Name: "Pizza", Price: decimal.NewFromInt(9)},
		{Name: "", Price: decimal.NewFromInt(1)},
	})
	if !errors.Is(err, itemdomain.ErrInvalidItemName) {
		t.Fatalf("expected ErrInvalidItemName, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected nothing stored, got %d items", len(repo.items))
	}

	items, err := svc.CreateBatch(context.Background(), []NewItemInput{
		{Name: "Pizza", Price: decimal.NewFromInt(9)},
		{Name: "Pasta", Price: decimal.NewFromInt(8)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].ID == 0 || items[1].ID == 0 {
		t.Fatal("expected ids on every stored item")
	}

	if _, err := svc.CreateBatch(context.Background(), nil); !errors.Is(err, itemdomain.ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestItemService_GetByIDReadThrough(t *testing.T) {
	repo := newMemRepo()
	c := newMemCache()
	svc := NewItemService(repo, c, testLogger())

	created, err := svc.Create(context.Background(), "Soup", decimal.RequireFromString("4.25"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Soup" {
		t.Fatalf("unexpected name %q", got.Name)
	}

	if !waitFill(t, c) {
		t.Fatal("cache was not warmed")
	}

	if _, err := svc.GetByID(context.Background(), created.ID); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if repo.gets != 1 {
		t.Fatalf("expected 1 repository read, got %d", repo.gets)
	}
}

func TestItemService_GetByIDSharesConcurrentLoads(t *testing.T) {
	repo := newMemRepo()
	svc := NewItemService(repo, nil, testLogger())
	created, err := svc.Create(context.Background(), "Tea", decimal.RequireFromString("2.00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	repo.gate = make(chan struct{})
	const callers = 8
	var wg sync.WaitGroup
	results := make(chan *models.Item, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			it, err := svc.GetByID(context.Background(), created.ID)
			if err != nil {
				t.Errorf("get: %v", err)
				return
			}
			results <- it
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(repo.gate)
	wg.Wait()
	close(results)

	seen := map[*models.Item]bool{}
	for it := range results {
		if seen[it] {
			t.Fatal("callers must not share the same *Item")
		}
		seen[it] = true
	}
	if len(seen) != callers {
		t.Fatalf("expected %d results, got %d", callers, len(seen))
	}
	if repo.gets < 1 || repo.gets > callers {
		t.Fatalf("unexpected repository reads: %d", repo.gets)
	}
}

func TestItemService_GetByIDFillRacingUpdateIsDropped(t *testing.T) {
	repo := newMemRepo()
	c := newMemCache()
	svc := NewItemService(repo, c, testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Soup", decimal.RequireFromString("4.25"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The read loads 4.25 but its cache fill is held until after the update.
	c.fillGate = make(chan struct{})
	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Price.Equal(decimal.RequireFromString("4.25")) {
		t.Fatalf("unexpected price %s", got.Price)
	}
	if _, err := svc.Update(ctx, created.ID, "Soup", decimal.RequireFromString("9.99")); err != nil {
		t.Fatalf("update: %v", err)
	}
	close(c.fillGate)
	if waitFill(t, c) {
		t.Fatal("fill from the pre-update read must be rejected")
	}

	got, err = svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if !got.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("expected 9.99 after update, got %s", got.Price)
	}
	if !waitFill(t, c) {
		t.Fatal("fill after update should be stored")
	}
	cached, err := c.Get(ctx, created.ID)
	if err != nil || !cached.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("expected cached 9.99, got %+v (%v)", cached, err)
	}
}

func TestItemService_GetByIDSharedLoadOutlivesFirstCaller(t *testing.T) {
	repo := newMemRepo()
	svc := NewItemService(repo, nil, testLogger())
	created, err := svc.Create(context.Background(), "Tea", decimal.RequireFromString("2.00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.gate = make(chan struct{})
	repo.entered = make(chan struct{}, 1)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.GetByID(firstCtx, created.ID)
		firstErr <- err
	}()
	<-repo.entered

	type result struct {
		item *models.Item
		err  error
	}
	second := make(chan result, 1)
	go func() {
		it, err := svc.GetByID(context.Background(), created.ID)
		second <- result{it, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	select {
	case err := <-firstErr:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled for the first caller, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("canceled caller kept waiting on the shared load")
	}

	close(repo.gate)
	res := <-second
	if res.err != nil {
		t.Fatalf("second caller failed with the first caller's cancellation: %v", res.err)
	}
	if res.item.Name != "Tea" {
		t.Fatalf("unexpected item %+v", res.item)
	}
}

func TestItemService_GetByIDNotFound(t *testing.T) {
	svc := NewItemService(newMemRepo(), newMemCache(), testLogger())
	_, err := svc.GetByID(context.Background(), 99)
	if !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemService_UpdateInvalidatesCache(t *testing.T) {
	repo := newMemRepo()
	c := newMemCache()
	svc := NewItemService(repo, c, testLogger())

	created, err := svc.Create(context.Background(), "Soup", decimal.NewFromInt(4))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	c.put(ItemToCached(created))

	updated, err := svc.Update(context.Background(), created.ID, "Hot Soup", decimal.NewFromInt(5))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Hot Soup" || !updated.Price.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("unexpected item %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("update must keep created_at")
	}
	if c.has(created.ID) {
		t.Fatal("expected cache entry to be removed")
	}
	if gen, _ := c.Generation(context.Background(), created.ID); gen != 1 {
		t.Fatalf("expected generation 1 after update, got %d", gen)
	}

	if _, err := svc.Update(context.Background(), 404, "Soup", decimal.NewFromInt(1)); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemService_Search(t *testing.T) {
	svc := NewItemService(newMemRepo(), nil, testLogger())
	ctx := context.Background()
	for _, n := range []string{"Pizza", "Pasta", "Pizza Bianca"} {
		if _, err := svc.Create(ctx, n, decimal.NewFromInt(9)); err != nil {
			t.Fatalf("create %s: %v", n, err)
		}
	}

	got, err := svc.Search(ctx, repositories.SearchCriteria{Name: "pizza"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
}

func TestItemService_List(t *testing.T) {
	svc := NewItemService(newMemRepo(), nil, testLogger())
	ctx := context.Background()
	for _, n := range []string{"A", "B", "C"} {
		if _, err := svc.Create(ctx, n, decimal.NewFromInt(1)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	items, total, err := svc.List(ctx, repositories.QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(items) != 2 {
		t.Fatalf("expected 2 of 3, got %d of %d", len(items), total)
	}
}
