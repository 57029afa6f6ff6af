package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// maxPriceScale matches the NUMERIC(12,2) column.
const maxPriceScale = 2

// NewItemPrice validates a price: it must be non-negative and carry at most
// two decimal places.
func NewItemPrice(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("item price must not be negative, got %s", d)
	}
	if !d.Equal(d.Truncate(maxPriceScale)) {
		return decimal.Zero, fmt.Errorf("item price must have at most %d decimal places, got %s", maxPriceScale, d)
	}
	return d, nil
}
