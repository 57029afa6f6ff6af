package postgres

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/ghuser/reactiveshop/pkg/database"
	cartdomain "github.com/ghuser/reactiveshop/services/cart/domain"
	"github.com/ghuser/reactiveshop/services/cart/domain/models"
	"github.com/ghuser/reactiveshop/services/cart/domain/repositories"
	domainsvcs "github.com/ghuser/reactiveshop/services/cart/domain/services"
)

// Item columns are aliased so they do not collide with cart_item's own.
// Rows of one cart are contiguous.
const (
	selectAllCarts = `SELECT cart_item.id, cart_item.quantity, cart_item.cart_id, cart_item.item_id,
       item.name AS item_name, item.price AS item_price
FROM cart
JOIN cart_item ON cart_item.cart_id = cart.id
JOIN item ON item.id = cart_item.item_id
ORDER BY cart_item.cart_id, cart_item.id`

	selectCartByID = `SELECT cart_item.id, cart_item.quantity, cart_item.cart_id, cart_item.item_id,
       item.name AS item_name, item.price AS item_price
FROM cart_item
JOIN item ON item.id = cart_item.item_id
WHERE cart_item.cart_id = $1
ORDER BY cart_item.id`

	insertCart = `INSERT INTO cart DEFAULT VALUES RETURNING id`

	cartExists = `SELECT EXISTS (SELECT 1 FROM cart WHERE id = $1)`
)

// CartRepository implements repositories.CartRepository.
type CartRepository struct {
	conn   Querier
	rows   repositories.RowSource
	writer repositories.EntityWriter
	locks  *lineLocks
}

// NewCartRepository wires the repository to the shared pool.
func NewCartRepository(d *database.Database) *CartRepository {
	conn := d.DB()
	return NewCartRepositoryWith(conn, NewSQLRowSource(conn), NewCartItemWriter(conn))
}

// NewCartRepositoryWith builds a repository from explicit ports. conn serves
// cart-row statements (Create, Exists).
func NewCartRepositoryWith(conn Querier, rows repositories.RowSource, writer repositories.EntityWriter) *CartRepository {
	return &CartRepository{
		conn:   conn,
		rows:   rows,
		writer: writer,
		locks:  newLineLocks(),
	}
}

// GetAll yields every cart with at least one line, ordered by cart id.
func (r *CartRepository) GetAll(ctx context.Context) iter.Seq2[*models.Cart, error] {
	return domainsvcs.GroupCarts(r.rows.Query(ctx, selectAllCarts))
}

// GetByID yields the cart when it has at least one line and nothing otherwise.
func (r *CartRepository) GetByID(ctx context.Context, cartID int64) iter.Seq2[*models.Cart, error] {
	return domainsvcs.GroupCarts(r.rows.Query(ctx, selectCartByID, cartID))
}

// AddItemToCart loads the cart, increments the line for item (creating it at
// quantity 1 when absent) and persists the change. A cart without lines is
// reported as ErrCartNotFound.
//
// Adds for the same (cart, item) pair are serialized within this process; a
// waiter gives up when ctx ends. An
// insert that loses a race against another writer is retried once; the
// retry sees the stored line and takes the update path.
func (r *CartRepository) AddItemToCart(ctx context.Context, cartID int64, item *models.Item) (*models.CartItem, error) {
	unlock, err := r.locks.lock(ctx, lineKey{cartID: cartID, itemID: item.ID})
	if err != nil {
		return nil, fmt.Errorf("wait for cart %d line %d: %w", cartID, item.ID, err)
	}
	defer unlock()

	line, err := r.addOnce(ctx, cartID, item)
	if errors.Is(err, cartdomain.ErrDuplicateLine) {
		line, err = r.addOnce(ctx, cartID, item)
	}
	return line, err
}

// AddFirstItem inserts a quantity-1 line into a cart whose existence the
// caller has already established. If a line for the item appears meanwhile
// it falls back to AddItemToCart semantics.
func (r *CartRepository) AddFirstItem(ctx context.Context, cartID int64, item *models.Item) (*models.CartItem, error) {
	unlock, err := r.locks.lock(ctx, lineKey{cartID: cartID, itemID: item.ID})
	if err != nil {
		return nil, fmt.Errorf("wait for cart %d line %d: %w", cartID, item.ID, err)
	}
	defer unlock()

	line := models.NewCartItem(cartID, item)
	line.Increment()
	stored, err := r.writer.Insert(ctx, line)
	if errors.Is(err, cartdomain.ErrDuplicateLine) {
		return r.addOnce(ctx, cartID, item)
	}
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *CartRepository) addOnce(ctx context.Context, cartID int64, item *models.Item) (*models.CartItem, error) {
	cart, err := r.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	lookup := cart.LookupLine(item.ID)
	line := lookup.Line
	if !lookup.Found {
		line = models.NewCartItem(cartID, item)
	}
	line.Increment()

	if line.IsPersisted() {
		if err := r.writer.UpdateColumns(ctx, cartItemTable, line.ID, map[string]any{
			domainsvcs.ColQuantity: line.Quantity,
		}); err != nil {
			return nil, err
		}
		return line, nil
	}

	stored, err := r.writer.Insert(ctx, line)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *CartRepository) loadCart(ctx context.Context, cartID int64) (*models.Cart, error) {
	for cart, err := range r.GetByID(ctx, cartID) {
		if err != nil {
			return nil, fmt.Errorf("load cart %d: %w", cartID, err)
		}
		return cart, nil
	}
	return nil, fmt.Errorf("%w: %d", cartdomain.ErrCartNotFound, cartID)
}

// Create stores a new cart with no lines.
func (r *CartRepository) Create(ctx context.Context) (*models.Cart, error) {
	var id int64
	if err := r.conn.QueryRowContext(ctx, insertCart).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert cart: %w", err)
	}
	return &models.Cart{ID: id, CartItems: []*models.CartItem{}}, nil
}

// Exists reports whether the cart row exists, regardless of its lines.
func (r *CartRepository) Exists(ctx context.Context, cartID int64) (bool, error) {
	var ok bool
	if err := r.conn.QueryRowContext(ctx, cartExists, cartID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check cart exists: %w", err)
	}
	return ok, nil
}
