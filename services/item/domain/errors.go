package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItemName indicates the item name violates domain constraints.
	ErrInvalidItemName = errors.New("invalid item name")

	// ErrInvalidItemPrice indicates a negative or over-precise price.
	ErrInvalidItemPrice = errors.New("invalid item price")

	// ErrEmptyBatch is returned when a batch save carries no items.
	ErrEmptyBatch = errors.New("empty item batch")
)
