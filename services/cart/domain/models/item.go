package models

import "github.com/shopspring/decimal"

// Item is the cart context's snapshot of a catalog item.
type Item struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}
