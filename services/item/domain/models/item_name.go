package models

import (
	"fmt"
	"unicode/utf8"
)

// ItemName is a value object for a display name of 1 to 255 characters.
// Length is counted in runes so multi-byte names (e.g. Hangul) get the full budget.
type ItemName string

const (
	minItemNameLength = 1
	maxItemNameLength = 255
)

// NewItemName constructs a valid ItemName or returns an error if constraints are violated.
func NewItemName(s string) (ItemName, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("item name must be valid UTF-8")
	}
	n := utf8.RuneCountInString(s)
	if n < minItemNameLength {
		return "", fmt.Errorf("item name must be at least %d character", minItemNameLength)
	}
	if n > maxItemNameLength {
		return "", fmt.Errorf("item name must not exceed %d characters", maxItemNameLength)
	}
	return ItemName(s), nil
}

// String returns the underlying string value.
func (n ItemName) String() string {
	return string(n)
}
