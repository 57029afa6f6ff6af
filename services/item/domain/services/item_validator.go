// Package services holds catalog rules that need more than one value object.
package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ghuser/reactiveshop/services/item/domain/models"
)

// NameViolation names the menu-name rule a candidate broke.
type NameViolation struct {
	Name string
	Rule string
}

func (v *NameViolation) Error() string {
	return fmt.Sprintf("item name %q: %s", v.Name, v.Rule)
}

// nameRules run in order; the first failing rule is reported. Names are
// printed on kitchen tickets and matched by search, so they must be a single
// clean line.
var nameRules = []struct {
	rule string
	ok   func(string) bool
}{
	{"is blank", func(s string) bool { return strings.TrimSpace(s) != "" }},
	{"has surrounding whitespace", func(s string) bool { return s == strings.TrimSpace(s) }},
	{"contains a control character", func(s string) bool {
		return strings.IndexFunc(s, unicode.IsControl) < 0
	}},
	{"contains a run of spaces", func(s string) bool { return !strings.Contains(s, "  ") }},
}

// CheckName applies the menu-name rules on top of the length bounds that
// models.NewItemName already enforces. Failures are *NameViolation.
func CheckName(name models.ItemName) error {
	s := name.String()
	for _, r := range nameRules {
		if !r.ok(s) {
			return &NameViolation{Name: s, Rule: r.rule}
		}
	}
	return nil
}

// ErrAlreadyPersisted rejects an insert of an item that storage already
// assigned an id.
var ErrAlreadyPersisted = errors.New("item already has an id")

// CheckNewItem gates an item before its first save.
func CheckNewItem(item *models.Item) error {
	switch {
	case item == nil:
		return errors.New("no item to save")
	case item.IsPersisted():
		return fmt.Errorf("%w: %d", ErrAlreadyPersisted, item.ID)
	case item.Price.IsNegative():
		return fmt.Errorf("price %s is negative", item.Price)
	}
	return CheckName(item.Name)
}
