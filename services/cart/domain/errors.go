package domain

import "errors"

// Sentinel errors for the cart domain. Use errors.Is() to check these.
var (
	// ErrCartNotFound indicates the cart does not exist or has no lines.
	ErrCartNotFound = errors.New("cart not found")

	// ErrItemNotFound indicates the item to add does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateLine indicates a line for the same (cart, item) pair was
	// stored concurrently.
	ErrDuplicateLine = errors.New("duplicate cart line")

	// ErrCartItemNotFound indicates a targeted update matched no cart line.
	ErrCartItemNotFound = errors.New("cart item not found")
)
