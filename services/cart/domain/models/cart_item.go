package models

// CartItem is one line of a cart: a quantity of a single item.
// (CartID, ItemID) identifies the line within its cart.
type CartItem struct {
	ID       int64
	Quantity int
	CartID   int64
	ItemID   int64
	Item     *Item
}

// NewCartItem returns an unpersisted line for item in cart with quantity 0.
// Callers increment it before storing.
func NewCartItem(cartID int64, item *Item) *CartItem {
	return &CartItem{
		CartID: cartID,
		ItemID: item.ID,
		Item:   item,
	}
}

// Increment raises the quantity by one in memory.
func (ci *CartItem) Increment() {
	ci.Quantity++
}

// IsPersisted reports whether storage has assigned an identity.
func (ci *CartItem) IsPersisted() bool {
	return ci.ID != 0
}
