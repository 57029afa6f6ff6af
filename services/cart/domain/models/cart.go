package models

// Cart is the aggregate root of the cart context. CartItems is populated
// only by aggregate loads and is never written back as a whole.
type Cart struct {
	ID        int64
	CartItems []*CartItem
}

// LineLookup is the result of searching a cart for an item's line.
type LineLookup struct {
	Line  *CartItem
	Found bool
}

// LookupLine finds the line holding itemID.
func (c *Cart) LookupLine(itemID int64) LineLookup {
	for _, ci := range c.CartItems {
		if ci.ItemID == itemID {
			return LineLookup{Line: ci, Found: true}
		}
	}
	return LineLookup{}
}
