package cart

import (
	"sync"

	"github.com/example/storefront/internal/catalog"
)

// LineItem pairs a product with a quantity. Quantity is always >= 1; an
// operation that would drop it below 1 removes the item instead.
type LineItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart owns the line items for one session. There is at most one line item
// per product id. All methods are safe for concurrent use; mutations are
// serialized through the cart's lock. Nothing is persisted: the cart lives
// and dies with the session.
type Cart struct {
	mu      sync.Mutex
	pricing Pricing
	items   map[string]*LineItem
	order   []string // product ids in insertion order
}

// New creates an empty cart with the given pricing constants.
func New(pricing Pricing) *Cart {
	return &Cart{
		pricing: pricing,
		items:   make(map[string]*LineItem),
	}
}

// AddOrIncrement merges qty of product into the cart. An existing line item
// for the same product id grows by qty; otherwise a new line item is
// appended. Non-positive qty is clamped to 1.
func (c *Cart) AddOrIncrement(product catalog.Product, qty int) {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.items[product.ID]; ok {
		item.Quantity += qty
		return
	}
	c.items[product.ID] = &LineItem{Product: product, Quantity: qty}
	c.order = append(c.order, product.ID)
}

// SetQuantity sets the line item's quantity to exactly qty. A qty <= 0
// removes the line item entirely. Unknown product ids are ignored.
func (c *Cart) SetQuantity(productID string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[productID]
	if !ok {
		return
	}
	if qty <= 0 {
		c.remove(productID)
		return
	}
	item.Quantity = qty
}

// RemoveItem removes the line item if present, no-op otherwise.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*LineItem)
	c.order = nil
}

// Items returns the line items in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LineItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

// Len returns the number of line items.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// remove expects the caller to hold the lock.
func (c *Cart) remove(productID string) {
	if _, ok := c.items[productID]; !ok {
		return
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
