// Package services holds the stateless domain logic of the cart context.
package services

import (
	"iter"

	"github.com/ghuser/reactiveshop/services/cart/domain/models"
	"github.com/ghuser/reactiveshop/services/cart/domain/repositories"
)

// Column names every cart aggregate query must select.
const (
	ColID        = "id"
	ColQuantity  = "quantity"
	ColCartID    = "cart_id"
	ColItemID    = "item_id"
	ColItemName  = "item_name"
	ColItemPrice = "item_price"
)

// GroupCarts folds joined cart_item/item rows into carts. Rows must be
// clustered by cart_id: each contiguous run of equal cart_id becomes one Cart
// whose lines keep row order. The current cart is buffered until the
// cart_id changes or the input ends.
//
// The first row or decode error is yielded with a nil Cart and ends the
// sequence; the buffered cart is dropped. Stopping early stops reading rows.
func GroupCarts(rows iter.Seq2[repositories.Row, error]) iter.Seq2[*models.Cart, error] {
	return func(yield func(*models.Cart, error) bool) {
		var current *models.Cart
		for row, err := range rows {
			if err != nil {
				yield(nil, err)
				return
			}
			line, err := DecodeCartItem(row)
			if err != nil {
				yield(nil, err)
				return
			}
			if current != nil && current.ID != line.CartID {
				if !yield(current, nil) {
					return
				}
				current = nil
			}
			if current == nil {
				current = &models.Cart{ID: line.CartID}
			}
			current.CartItems = append(current.CartItems, line)
		}
		if current != nil {
			yield(current, nil)
		}
	}
}

// DecodeCartItem builds one line, with its Item, from a joined row.
func DecodeCartItem(row repositories.Row) (*models.CartItem, error) {
	id, err := Int64Column(row, ColID)
	if err != nil {
		return nil, err
	}
	qty, err := Int64Column(row, ColQuantity)
	if err != nil {
		return nil, err
	}
	cartID, err := Int64Column(row, ColCartID)
	if err != nil {
		return nil, err
	}
	itemID, err := Int64Column(row, ColItemID)
	if err != nil {
		return nil, err
	}
	name, err := StringColumn(row, ColItemName)
	if err != nil {
		return nil, err
	}
	price, err := DecimalColumn(row, ColItemPrice)
	if err != nil {
		return nil, err
	}

	return &models.CartItem{
		ID:       id,
		Quantity: int(qty),
		CartID:   cartID,
		ItemID:   itemID,
		Item: &models.Item{
			ID:    itemID,
			Name:  name,
			Price: price,
		},
	}, nil
}
