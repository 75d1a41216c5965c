package storefront

import (
	"sync"

	"github.com/google/uuid"
)

// NewRequestID generates the client_request_id for an order submission. One
// id is minted per checkout attempt and reused on retries, which is what
// makes resubmission idempotent server-side.
func NewRequestID() string {
	return uuid.NewString()
}

// CartItem pairs a product snapshot with a quantity. The price captured at
// add-time is what Total uses; later catalog changes do not reprice an entry.
type CartItem struct {
	Product Product
	Qty     int32
}

// Cart is the local, pre-submission collection of selected products. Entries
// are unique per product id and always carry a positive quantity.
type Cart struct {
	mu    sync.Mutex
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem merges into an existing entry for the same product id, otherwise
// appends a new entry with quantity 1.
func (c *Cart) AddItem(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Qty++
			return
		}
	}
	c.items = append(c.items, CartItem{Product: p, Qty: 1})
}

// RemoveItem drops the entry for the given product id; absent ids are a
// no-op.
func (c *Cart) RemoveItem(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

// UpdateQty sets an entry's quantity. A quantity of zero or less removes the
// entry; the cart never holds a non-positive quantity.
func (c *Cart) UpdateQty(productID int64, qty int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if qty <= 0 {
		c.removeLocked(productID)
		return
	}
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Qty = qty
			return
		}
	}
}

// Clear empties the cart. Called once, after a confirmed order submission.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// Total recomputes the sum of captured price times quantity on every call.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Product.Price * float64(item.Qty)
	}
	return total
}

// Items returns a copy of the current entries in insertion order.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns the summed quantity across all entries, for badge display.
func (c *Cart) Count() int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int32
	for _, item := range c.items {
		n += item.Qty
	}
	return n
}

// OrderItems converts the cart into the submission payload shape: product id
// and quantity pairs, without the product snapshots.
func (c *Cart) OrderItems() []OrderItemInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]OrderItemInput, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, OrderItemInput{ProductID: item.Product.ID, Qty: item.Qty})
	}
	return out
}

func (c *Cart) removeLocked(productID int64) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}
