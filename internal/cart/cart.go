package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Product is the slice of catalog data the cart needs. Supplied read-only
// by the catalog layer.
type Product struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type Item struct {
	Product
	Quantity int `json:"quantity"`
}

// Snapshot is an immutable view of the cart. Mutations on the Store build a
// new snapshot; holders of an old one never observe changes.
type Snapshot struct {
	Items []Item `json:"items"`
}

func (s Snapshot) Empty() bool {
	return len(s.Items) == 0
}

func (s Snapshot) Find(productID int64) (Item, bool) {
	for _, item := range s.Items {
		if item.ID == productID {
			return item, true
		}
	}
	return Item{}, false
}

// Subtotal is Σ(price × quantity). Subscribers acquire catalog items at no
// incremental charge, so their subtotal is forced to zero.
func (s Snapshot) Subtotal(subscribed bool) decimal.Decimal {
	if subscribed {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, item := range s.Items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// Listener is notified with the new snapshot after every mutation.
type Listener func(Snapshot)

// Store holds the items a user intends to purchase. All operations are
// synchronous and replace the snapshot wholesale.
type Store struct {
	mu        sync.Mutex
	snap      Snapshot
	listeners []Listener
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Add increments quantity for a known product id, keeping its position, and
// appends unknown products with quantity 1. It never duplicates an id.
func (s *Store) Add(p Product) {
	s.update(func(items []Item) []Item {
		for i, item := range items {
			if item.ID == p.ID {
				next := copyItems(items)
				next[i].Quantity++
				return next
			}
		}
		next := make([]Item, len(items), len(items)+1)
		copy(next, items)
		return append(next, Item{Product: p, Quantity: 1})
	})
}

// Remove deletes the entry for id. Absent ids are a no-op.
func (s *Store) Remove(productID int64) {
	s.update(func(items []Item) []Item {
		next := make([]Item, 0, len(items))
		for _, item := range items {
			if item.ID != productID {
				next = append(next, item)
			}
		}
		return next
	})
}

// UpdateQuantity sets the entry's quantity. A value <= 0 removes the entry.
func (s *Store) UpdateQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		s.Remove(productID)
		return
	}
	s.update(func(items []Item) []Item {
		next := copyItems(items)
		for i := range next {
			if next[i].ID == productID {
				next[i].Quantity = quantity
			}
		}
		return next
	})
}

func (s *Store) Clear() {
	s.update(func([]Item) []Item {
		return nil
	})
}

func (s *Store) update(fn func([]Item) []Item) {
	s.mu.Lock()
	s.snap = Snapshot{Items: fn(s.snap.Items)}
	snap := s.snap
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func copyItems(items []Item) []Item {
	next := make([]Item, len(items))
	copy(next, items)
	return next
}
