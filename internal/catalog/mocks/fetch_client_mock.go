package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/example/storefront/internal/catalog"
)

// ErrNotFound is returned by FetchOne for ids absent from Products
var ErrNotFound = errors.New("product not found")

// MockFetchClient is a mock implementation of catalog.FetchClient for testing
type MockFetchClient struct {
	mu sync.Mutex

	Products []catalog.Product
	Err      error

	// For tracking calls in tests
	FetchAllCalls int
	FetchOneCalls []string

	// Optional callbacks override the canned Products/Err behavior
	FetchAllCallback func(ctx context.Context) ([]catalog.Product, error)
	FetchOneCallback func(ctx context.Context, id string) (catalog.Product, error)
}

// NewMockFetchClient creates a MockFetchClient that serves the given products
func NewMockFetchClient(products ...catalog.Product) *MockFetchClient {
	return &MockFetchClient{Products: products}
}

// FetchAll returns the canned collection or error
func (m *MockFetchClient) FetchAll(ctx context.Context) ([]catalog.Product, error) {
	m.mu.Lock()
	m.FetchAllCalls++
	cb := m.FetchAllCallback
	products := make([]catalog.Product, len(m.Products))
	copy(products, m.Products)
	err := m.Err
	m.mu.Unlock()

	if cb != nil {
		return cb(ctx)
	}
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FetchOne returns the canned product with the given id
func (m *MockFetchClient) FetchOne(ctx context.Context, id string) (catalog.Product, error) {
	m.mu.Lock()
	m.FetchOneCalls = append(m.FetchOneCalls, id)
	cb := m.FetchOneCallback
	products := make([]catalog.Product, len(m.Products))
	copy(products, m.Products)
	err := m.Err
	m.mu.Unlock()

	if cb != nil {
		return cb(ctx, id)
	}
	if err != nil {
		return catalog.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, ErrNotFound
}
