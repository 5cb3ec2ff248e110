package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	DefaultFeaturedCount    = 4
	DefaultNewArrivalsCount = 6
)

// SortKey selects the product field to sort by.
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByPrice     SortKey = "price"
	SortByCreatedAt SortKey = "created_at"
)

// SortDirection is the sort order.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// FilterByCategory returns the products whose category label matches,
// ignoring case, in collection order. Empty when the engine is not ready.
func (e *Engine) FilterByCategory(category string) []Product {
	matched := make([]Product, 0)
	for _, p := range e.collection() {
		if strings.EqualFold(p.Category, category) {
			matched = append(matched, p)
		}
	}
	return matched
}

// SelectFeatured returns the first n products in collection order.
// TODO: replace with a backend-supplied featured flag once the product API
// exposes one; collection order is a stand-in policy.
func (e *Engine) SelectFeatured(n int) []Product {
	return clamp(e.collection(), n)
}

// SelectNewArrivals returns the n most recently created products, newest
// first. Products created at the same instant keep their collection order.
func (e *Engine) SelectNewArrivals(n int) []Product {
	products := e.collection()
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return clamp(products, n)
}

// Search returns the products whose name or description contains the query,
// ignoring case, in collection order. An empty query returns the whole
// collection.
func (e *Engine) Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	products := e.collection()
	if q == "" {
		return products
	}
	matched := make([]Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Categories summarizes the distinct category labels with their product
// counts, ordered by first appearance. Labels differing only in case are
// folded together; the first spelling seen wins.
func (e *Engine) Categories() []CategorySummary {
	index := make(map[string]int)
	summaries := make([]CategorySummary, 0)
	for _, p := range e.collection() {
		key := strings.ToLower(p.Category)
		if i, ok := index[key]; ok {
			summaries[i].ProductCount++
			continue
		}
		index[key] = len(summaries)
		summaries = append(summaries, CategorySummary{Name: p.Category, ProductCount: 1})
	}
	return summaries
}

// Lookup finds a product in the held collection by id.
func (e *Engine) Lookup(id string) (Product, bool) {
	for _, p := range e.collection() {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// SortProducts returns a sorted copy of view. The sort is stable and the
// input is never reordered. Name comparison uses locale-aware collation;
// price and creation time compare numerically. Unknown keys sort by name,
// unknown directions sort ascending.
func SortProducts(view []Product, key SortKey, dir SortDirection) []Product {
	out := make([]Product, len(view))
	copy(out, view)

	coll := collate.New(language.Und)
	cmp := func(a, b Product) int {
		switch key {
		case SortByPrice:
			switch {
			case a.Price < b.Price:
				return -1
			case a.Price > b.Price:
				return 1
			}
			return 0
		case SortByCreatedAt:
			return a.CreatedAt.Compare(b.CreatedAt)
		default:
			return coll.CompareString(a.Name, b.Name)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return cmp(out[i], out[j]) > 0
		}
		return cmp(out[i], out[j]) < 0
	})
	return out
}

func clamp(products []Product, n int) []Product {
	if n < 0 {
		n = 0
	}
	if n > len(products) {
		n = len(products)
	}
	return products[:n]
}
