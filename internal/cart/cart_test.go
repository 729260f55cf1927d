package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int64, price float64) Product {
	return Product{
		ID:    id,
		Title: "Product",
		Price: decimal.NewFromFloat(price),
	}
}

func TestAddSameProductIncrementsQuantity(t *testing.T) {
	store := NewStore()

	for i := 0; i < 5; i++ {
		store.Add(product(1, 39.00))
	}

	snap := store.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, int64(1), snap.Items[0].ID)
	assert.Equal(t, 5, snap.Items[0].Quantity)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	store := NewStore()

	store.Add(product(3, 10))
	store.Add(product(5, 20))
	store.Add(product(7, 30))
	store.Add(product(5, 20)) // existing item keeps its position

	snap := store.Snapshot()
	require.Len(t, snap.Items, 3)
	assert.Equal(t, int64(3), snap.Items[0].ID)
	assert.Equal(t, int64(5), snap.Items[1].ID)
	assert.Equal(t, int64(7), snap.Items[2].ID)
	assert.Equal(t, 2, snap.Items[1].Quantity)
}

func TestRemoveKeepsRelativeOrder(t *testing.T) {
	store := NewStore()
	store.Add(product(3, 10))
	store.Add(product(5, 20))
	store.Add(product(7, 30))

	store.Remove(5)

	snap := store.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, int64(3), snap.Items[0].ID)
	assert.Equal(t, int64(7), snap.Items[1].ID)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	store := NewStore()
	store.Add(product(1, 10))

	store.Remove(42)

	assert.Len(t, store.Snapshot().Items, 1)
}

func TestUpdateQuantity(t *testing.T) {
	store := NewStore()
	store.Add(product(1, 10))

	store.UpdateQuantity(1, 7)
	assert.Equal(t, 7, store.Snapshot().Items[0].Quantity)

	store.UpdateQuantity(1, 0)
	assert.True(t, store.Snapshot().Empty(), "quantity <= 0 removes the entry")

	store.Add(product(2, 10))
	store.UpdateQuantity(2, -3)
	assert.True(t, store.Snapshot().Empty())
}

func TestClear(t *testing.T) {
	store := NewStore()
	store.Add(product(1, 10))
	store.Add(product(2, 20))

	store.Clear()

	assert.True(t, store.Snapshot().Empty())
}

func TestSubtotal(t *testing.T) {
	store := NewStore()
	store.Add(product(1, 39.00))
	store.Add(product(2, 65.00))
	store.Add(product(2, 65.00))

	snap := store.Snapshot()
	assert.Equal(t, "169.00", snap.Subtotal(false).StringFixed(2))
	assert.True(t, snap.Subtotal(true).IsZero(), "subscribers pay nothing")
}

func TestSnapshotIsImmutable(t *testing.T) {
	store := NewStore()
	store.Add(product(1, 10))

	before := store.Snapshot()
	store.Add(product(1, 10))
	after := store.Snapshot()

	assert.Equal(t, 1, before.Items[0].Quantity, "old snapshot must not observe the mutation")
	assert.Equal(t, 2, after.Items[0].Quantity)
}

func TestListenersAreNotified(t *testing.T) {
	store := NewStore()

	var notified []Snapshot
	store.Subscribe(func(s Snapshot) {
		notified = append(notified, s)
	})

	store.Add(product(1, 10))
	store.UpdateQuantity(1, 3)
	store.Clear()

	require.Len(t, notified, 3)
	assert.Equal(t, 3, notified[1].Items[0].Quantity)
	assert.True(t, notified[2].Empty())
}

func TestManagerReturnsSameStorePerUser(t *testing.T) {
	m := NewManager()

	a := m.For("user-a")
	a.Add(product(1, 10))

	assert.Len(t, m.For("user-a").Snapshot().Items, 1)
	assert.True(t, m.For("user-b").Snapshot().Empty())
}
