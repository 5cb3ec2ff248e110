package api

import (
	"sync"

	"github.com/example/storefront/internal/cart"
)

// SessionCarts hands out one cart per session id. Carts live in memory only;
// a restart or an expired session loses them, which is the intended
// lifecycle.
type SessionCarts struct {
	mu      sync.Mutex
	pricing cart.Pricing
	carts   map[string]*cart.Cart
}

// NewSessionCarts creates an empty registry using the given pricing for
// every cart it creates.
func NewSessionCarts(pricing cart.Pricing) *SessionCarts {
	return &SessionCarts{
		pricing: pricing,
		carts:   make(map[string]*cart.Cart),
	}
}

// Get returns the cart for sessionID, creating it on first use.
func (s *SessionCarts) Get(sessionID string) *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[sessionID]
	if !ok {
		c = cart.New(s.pricing)
		s.carts[sessionID] = c
	}
	return c
}
