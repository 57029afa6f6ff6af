// Package repositories declares the storage ports of the cart context.
package repositories

import (
	"context"
	"iter"

	"github.com/ghuser/reactiveshop/services/cart/domain/models"
)

// Row is one result row keyed by column name (or alias).
type Row map[string]any

// RowSource runs a parameterized query and yields rows lazily. Iteration
// stops at the first error, which is yielded with a nil Row. Breaking out of
// the loop releases the underlying cursor.
type RowSource interface {
	Query(ctx context.Context, query string, args ...any) iter.Seq2[Row, error]
}

// EntityWriter stores cart lines.
type EntityWriter interface {
	// Insert stores a new line and returns it with its storage-assigned ID.
	// A second line for the same (cart, item) pair fails with ErrDuplicateLine.
	Insert(ctx context.Context, line *models.CartItem) (*models.CartItem, error)

	// UpdateColumns sets the given columns on the row of table whose primary
	// key is id. Columns not named are left unchanged.
	UpdateColumns(ctx context.Context, table string, id int64, columns map[string]any) error
}

// ItemFinder resolves catalog items for the cart context.
type ItemFinder interface {
	// FindByID returns the item, or ErrItemNotFound.
	FindByID(ctx context.Context, id int64) (*models.Item, error)
}

// CartRepository loads cart aggregates and upserts their lines.
type CartRepository interface {
	// GetAll yields every cart that has at least one line.
	GetAll(ctx context.Context) iter.Seq2[*models.Cart, error]

	// GetByID yields at most one cart. A cart without lines yields nothing.
	GetByID(ctx context.Context, cartID int64) iter.Seq2[*models.Cart, error]

	// AddItemToCart increments the line for item in the cart, creating it
	// with quantity 1 when absent.
	AddItemToCart(ctx context.Context, cartID int64, item *models.Item) (*models.CartItem, error)

	// AddFirstItem adds item to a cart known to exist, even one without lines.
	AddFirstItem(ctx context.Context, cartID int64, item *models.Item) (*models.CartItem, error)

	// Create stores a new empty cart.
	Create(ctx context.Context) (*models.Cart, error)

	// Exists reports whether a cart row exists, with or without lines.
	Exists(ctx context.Context, cartID int64) (bool, error)
}
