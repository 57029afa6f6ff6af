package postgres

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	cartdomain "github.com/ghuser/reactiveshop/services/cart/domain"
	"github.com/ghuser/reactiveshop/services/cart/domain/models"
	"github.com/ghuser/reactiveshop/services/cart/domain/repositories"
)

// memStore is an in-memory RowSource and EntityWriter that understands the
// two cart aggregate queries and enforces (cart_id, item_id) uniqueness.
type memStore struct {
	mu      sync.Mutex
	nextID  int64
	catalog map[int64]*models.Item
	lines   []models.CartItem
	inserts int
	updates int
}

func newMemStore() *memStore {
	return &memStore{catalog: map[int64]*models.Item{}}
}

func (s *memStore) addItem(id int64, name, price string) *models.Item {
	it := &models.Item{ID: id, Name: name, Price: decimal.RequireFromString(price)}
	s.catalog[id] = it
	return it
}

// seed stores a line directly, bypassing the repository.
func (s *memStore) seed(cartID, itemID int64, qty int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.lines = append(s.lines, models.CartItem{ID: s.nextID, Quantity: qty, CartID: cartID, ItemID: itemID})
	return s.nextID
}

func (s *memStore) linesFor(cartID, itemID int64) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.CartItem
	for _, l := range s.lines {
		if l.CartID == cartID && l.ItemID == itemID {
			out = append(out, l)
		}
	}
	return out
}

func (s *memStore) Query(_ context.Context, query string, args ...any) iter.Seq2[repositories.Row, error] {
	return func(yield func(repositories.Row, error) bool) {
		s.mu.Lock()
		var selected []models.CartItem
		switch query {
		case selectAllCarts:
			selected = append(selected, s.lines...)
		case selectCartByID:
			for _, l := range s.lines {
				if l.CartID == args[0].(int64) {
					selected = append(selected, l)
				}
			}
		default:
			s.mu.Unlock()
			yield(nil, fmt.Errorf("unexpected query %q", query))
			return
		}
		sort.Slice(selected, func(i, j int) bool {
			if selected[i].CartID != selected[j].CartID {
				return selected[i].CartID < selected[j].CartID
			}
			return selected[i].ID < selected[j].ID
		})
		rows := make([]repositories.Row, len(selected))
		for i, l := range selected {
			it := s.catalog[l.ItemID]
			rows[i] = repositories.Row{
				"id":         l.ID,
				"quantity":   int64(l.Quantity),
				"cart_id":    l.CartID,
				"item_id":    l.ItemID,
				"item_name":  it.Name,
				"item_price": it.Price.String(),
			}
		}
		s.mu.Unlock()

		for _, r := range rows {
			if !yield(r, nil) {
				return
			}
		}
	}
}

func (s *memStore) Insert(_ context.Context, line *models.CartItem) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lines {
		if l.CartID == line.CartID && l.ItemID == line.ItemID {
			return nil, fmt.Errorf("%w: cart %d item %d", cartdomain.ErrDuplicateLine, line.CartID, line.ItemID)
		}
	}
	s.inserts++
	s.nextID++
	stored := *line
	stored.ID = s.nextID
	s.lines = append(s.lines, models.CartItem{ID: stored.ID, Quantity: stored.Quantity, CartID: stored.CartID, ItemID: stored.ItemID})
	return &stored, nil
}

func (s *memStore) UpdateColumns(_ context.Context, table string, id int64, columns map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if table != cartItemTable {
		return fmt.Errorf("unexpected table %q", table)
	}
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.updates++
			s.lines[i].Quantity = columns["quantity"].(int)
			return nil
		}
	}
	return cartdomain.ErrCartItemNotFound
}
