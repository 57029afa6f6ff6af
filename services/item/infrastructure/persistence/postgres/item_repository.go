package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/reactiveshop/pkg/database"
	"github.com/ghuser/reactiveshop/pkg/events"
	itemdomain "github.com/ghuser/reactiveshop/services/item/domain"
	domainevents "github.com/ghuser/reactiveshop/services/item/domain/events"
	"github.com/ghuser/reactiveshop/services/item/domain/models"
	"github.com/ghuser/reactiveshop/services/item/domain/repositories"
	"github.com/ghuser/reactiveshop/services/item/infrastructure/persistence/postgres/db"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.Bus
}

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. The bus is used to publish ItemCreatedEvents after a successful save.
// A nil bus disables publishing.
func NewItemRepository(database *database.Database, bus *events.Bus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

// Save persists a new Item and publishes an ItemCreatedEvent within the same transaction.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return r.insert(ctx, tx, item)
	})
}

// SaveBatch inserts every item in a single transaction. Either all rows are
// stored or none are.
func (r *ItemRepository) SaveBatch(ctx context.Context, items []*models.Item) error {
	if len(items) == 0 {
		return itemdomain.ErrEmptyBatch
	}
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for i, item := range items {
			if err := r.insert(ctx, tx, item); err != nil {
				return fmt.Errorf("batch item %d: %w", i, err)
			}
		}
		return nil
	})
}

func (r *ItemRepository) insert(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	row, err := db.New(tx).InsertItem(ctx, db.InsertItemParams{
		Name:      item.Name.String(),
		Price:     item.Price,
		CreatedAt: item.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	item.ID = row.ID

	if r.bus != nil {
		if err := r.publishCreated(tx, item); err != nil {
			return fmt.Errorf("publish item created: %w", err)
		}
	}
	return nil
}

// GetByID retrieves an Item by ID. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

// FindAll retrieves a paginated list of items and the total count.
func (r *ItemRepository) FindAll(ctx context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	q := db.New(r.db.DB())

	rows, err := q.ListItems(ctx, db.ListItemsParams{
		Limit:  int32(opts.Limit),
		Offset: int32(opts.Offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("query items: %w", err)
	}

	total, err := q.CountItems(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	return rowsToItems(rows), int(total), nil
}

// likeEscaper makes %, _ and the escape character itself match literally
// inside a LIKE pattern declared with ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches names case-insensitively by substring and prices exactly.
// Criteria values are always bound as parameters, and the name is matched
// literally.
func (r *ItemRepository) Search(ctx context.Context, c repositories.SearchCriteria) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).SearchItems(ctx, db.SearchItemsParams{
		Name:  likeEscaper.Replace(c.Name),
		Price: c.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return rowsToItems(rows), nil
}

// Update overwrites name and price of an existing Item.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	n, err := db.New(r.db.DB()).UpdateItem(ctx, db.UpdateItemParams{
		ID:    item.ID,
		Name:  item.Name.String(),
		Price: item.Price,
	})
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if n == 0 {
		return itemdomain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) publishCreated(tx *sql.Tx, item *models.Item) error {
	event := domainevents.NewItemCreated(item.ID, item.Name.String(), item.Price, item.CreatedAt)
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", strconv.Itoa(event.Version))
	p, err := r.bus.TxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicItemCreated, msg)
}

func rowToItem(row db.Item) *models.Item {
	return &models.Item{
		ID:        row.ID,
		Name:      models.ItemName(row.Name),
		Price:     row.Price,
		CreatedAt: row.CreatedAt,
	}
}

func rowsToItems(rows []db.Item) []*models.Item {
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items
}
