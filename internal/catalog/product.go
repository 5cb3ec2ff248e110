package catalog

import (
	"context"
	"time"
)

// Product is a catalog entry as served by the product API. Products are
// treated as immutable once fetched; a refetch replaces the whole collection
// rather than patching individual entries.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"` // cents
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url,omitempty"`
	Stock       int       `json:"stock_quantity"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategorySummary is a derived view of one category label and how many
// products carry it.
type CategorySummary struct {
	Name         string `json:"name"`
	ProductCount int    `json:"product_count"`
}

// FetchClient retrieves products from the remote product API. It either
// returns the complete current set or fails; it never returns a partial
// collection.
type FetchClient interface {
	FetchAll(ctx context.Context) ([]Product, error)
	FetchOne(ctx context.Context, id string) (Product, error)
}
