package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is the core aggregate for this bounded context.
// ID is assigned by storage on first insert; zero means not yet persisted.
type Item struct {
	ID        int64
	Name      ItemName
	Price     decimal.Decimal
	CreatedAt time.Time
}

// NewItem constructs an unpersisted Item stamped with the current time.
func NewItem(name ItemName, price decimal.Decimal) *Item {
	return &Item{
		Name:      name,
		Price:     price,
		CreatedAt: time.Now().UTC(),
	}
}

// IsPersisted reports whether storage has assigned an identity.
func (i *Item) IsPersisted() bool {
	return i.ID != 0
}
