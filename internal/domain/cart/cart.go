// Package cart holds a visitor's shopping cart.
//
// Each item records the product's stock at the moment it was first added and
// never grows past it. The ceiling is not refreshed against live stock: there
// is no server-side order to arbitrate between sessions, so the snapshot is
// the only limit the cart can honour.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Product is the part of a catalog product the cart copies at add time.
type Product struct {
	ID    string
	Name  string
	Price float64
	Image string
}

type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
	Stock    int     `json:"stock"`
}

// Subtotal is price × quantity.
func (i Item) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AtLimit reports whether another unit would exceed the stock ceiling.
func (i Item) AtLimit() bool {
	return i.Quantity >= i.Stock
}

// Store is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items []Item
	open  bool
}

func NewStore() *Store {
	return &Store{}
}

// Add puts one unit of p in the cart. For an item already present the
// quantity grows by one only while it is below the ceiling recorded at first
// add; stockCeiling is used only for new items, which are inserted only when
// it is positive. It returns false when nothing changed.
func (s *Store) Add(p Product, stockCeiling int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != p.ID {
			continue
		}
		if s.items[i].AtLimit() {
			return false
		}
		s.items[i].Quantity++
		return true
	}

	if stockCeiling <= 0 {
		return false
	}
	s.items = append(s.items, Item{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: 1,
		Stock:    stockCeiling,
	})
	return true
}

// CanAdd reports whether Add would change the cart.
func (s *Store) CanAdd(id string, stockCeiling int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return !item.AtLimit()
		}
	}
	return stockCeiling > 0
}

// Remove drops the item outright, whatever its quantity.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// Items returns a copy of the cart contents in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns the entry for id, if any.
func (s *Store) Item(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) == 0
}

func (s *Store) Open() {
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
}

func (s *Store) Close() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}
