package cart_test

import (
	"testing"

	"github.com/example/storefront/internal/cart"
	"github.com/example/storefront/internal/catalog"
	"github.com/stretchr/testify/assert"
)

// ============================================
// ComputeTotals Tests
// ============================================

func TestCart_ComputeTotals(t *testing.T) {
	c := cart.New(cart.Pricing{ShippingFeeCents: 599, TaxRate: 0.08})
	c.AddOrIncrement(catalog.Product{ID: "p1", Price: 1000}, 2) // $10.00 x 2
	c.AddOrIncrement(catalog.Product{ID: "p2", Price: 500}, 1)  // $5.00 x 1

	totals := c.ComputeTotals()

	assert.Equal(t, int64(2500), totals.Subtotal) // $25.00
	assert.Equal(t, int64(599), totals.Shipping)  // $5.99
	assert.Equal(t, int64(200), totals.Tax)       // $2.00
	assert.Equal(t, int64(3299), totals.Total)    // $32.99
}

func TestCart_ComputeTotals_EmptyCart(t *testing.T) {
	c := cart.New(cart.Pricing{ShippingFeeCents: 599, TaxRate: 0.08})

	totals := c.ComputeTotals()

	// Well-defined even when empty: only the flat shipping fee remains.
	// Presentation suppresses the display instead.
	assert.Equal(t, int64(0), totals.Subtotal)
	assert.Equal(t, int64(0), totals.Tax)
	assert.Equal(t, int64(599), totals.Total)
}

func TestCart_ComputeTotals_RecomputedOnEveryCall(t *testing.T) {
	c := cart.New(cart.Pricing{ShippingFeeCents: 599, TaxRate: 0.08})
	c.AddOrIncrement(catalog.Product{ID: "p1", Price: 1000}, 1)

	before := c.ComputeTotals()
	c.SetQuantity("p1", 3)
	after := c.ComputeTotals()

	assert.Equal(t, int64(1000), before.Subtotal)
	assert.Equal(t, int64(3000), after.Subtotal)
}

func TestCart_ComputeTotals_TaxRounding(t *testing.T) {
	tests := []struct {
		name    string
		price   int64
		qty     int
		taxRate float64
		wantTax int64
	}{
		{"exact", 2500, 1, 0.08, 200},
		{"whole cents", 1250, 1, 0.1, 125},
		{"rounds fractional cents", 999, 1, 0.08, 80}, // 79.92 -> 80
		{"zero rate", 1000, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cart.New(cart.Pricing{ShippingFeeCents: 0, TaxRate: tt.taxRate})
			c.AddOrIncrement(catalog.Product{ID: "p", Price: tt.price}, tt.qty)

			assert.Equal(t, tt.wantTax, c.ComputeTotals().Tax)
		})
	}
}

func TestCart_ComputeTotals_DefaultPricing(t *testing.T) {
	assert.Equal(t, int64(599), cart.DefaultPricing.ShippingFeeCents)
	assert.InDelta(t, 0.08, cart.DefaultPricing.TaxRate, 1e-9)
}
