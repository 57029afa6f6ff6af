package services

import (
	"context"
	"errors"
	"fmt"

	cartdomain "github.com/ghuser/reactiveshop/services/cart/domain"
	"github.com/ghuser/reactiveshop/services/cart/domain/models"
	itemdomain "github.com/ghuser/reactiveshop/services/item/domain"
	itemmodels "github.com/ghuser/reactiveshop/services/item/domain/models"
)

// ItemLookup is the part of the item context the cart context reads from.
type ItemLookup interface {
	GetByID(ctx context.Context, id int64) (*itemmodels.Item, error)
}

// CatalogFinder adapts the item context to repositories.ItemFinder.
type CatalogFinder struct {
	items ItemLookup
}

// NewCatalogFinder returns an ItemFinder backed by items.
func NewCatalogFinder(items ItemLookup) *CatalogFinder {
	return &CatalogFinder{items: items}
}

// FindByID translates the catalog item into the cart's item snapshot.
func (f *CatalogFinder) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	it, err := f.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, itemdomain.ErrItemNotFound) {
			return nil, fmt.Errorf("%w: %d", cartdomain.ErrItemNotFound, id)
		}
		return nil, err
	}
	return &models.Item{
		ID:    it.ID,
		Name:  it.Name.String(),
		Price: it.Price,
	}, nil
}
