package cart

import "math"

// Pricing holds the configured order constants. Amounts are cents.
type Pricing struct {
	ShippingFeeCents int64
	TaxRate          float64
}

// DefaultPricing matches the storefront defaults: $5.99 flat shipping, 8% tax.
var DefaultPricing = Pricing{ShippingFeeCents: 599, TaxRate: 0.08}

// Totals is the order summary derived from the current line items. All
// amounts are cents.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// ComputeTotals recomputes the order totals from the current line items.
// The flat shipping fee applies even to an empty cart; callers that want to
// suppress totals for empty carts should check Len first.
func (c *Cart) ComputeTotals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	var subtotal int64
	for _, item := range c.items {
		subtotal += item.Product.Price * int64(item.Quantity)
	}

	tax := int64(math.Round(float64(subtotal) * c.pricing.TaxRate))
	return Totals{
		Subtotal: subtotal,
		Shipping: c.pricing.ShippingFeeCents,
		Tax:      tax,
		Total:    subtotal + c.pricing.ShippingFeeCents + tax,
	}
}
