package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ghuser/reactiveshop/services/item/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// SearchCriteria filters items. Zero values are ignored: an empty Name matches
// every name and a zero Price matches every price.
type SearchCriteria struct {
	Name  string
	Price decimal.Decimal
}

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// Save inserts a new Item and sets its storage-assigned ID.
	Save(ctx context.Context, item *models.Item) error

	// SaveBatch inserts all items in one transaction, setting each ID.
	SaveBatch(ctx context.Context, items []*models.Item) error

	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// FindAll retrieves a page of items and the total count (ignoring pagination).
	FindAll(ctx context.Context, opts QueryOpts) ([]*models.Item, int, error)

	// Search returns items matching every non-zero criterion.
	Search(ctx context.Context, c SearchCriteria) ([]*models.Item, error)

	// Update overwrites name and price of an existing Item.
	// Returns ErrItemNotFound when no row matches.
	Update(ctx context.Context, item *models.Item) error
}
