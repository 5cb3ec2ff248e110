package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/storefront/internal/analytics"
	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/productapi"
	"github.com/google/uuid"
)

type Handlers struct {
	engine  *catalog.Engine
	client  catalog.FetchClient
	carts   *SessionCarts
	tracker *analytics.Tracker
}

func NewHandlers(engine *catalog.Engine, client catalog.FetchClient, carts *SessionCarts, tracker *analytics.Tracker) *Handlers {
	return &Handlers{
		engine:  engine,
		client:  client,
		carts:   carts,
		tracker: tracker,
	}
}

// Catalog Handlers

func (h *Handlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.Snapshot())
}

func (h *Handlers) Refetch(w http.ResponseWriter, r *http.Request) {
	h.engine.Refetch(r.Context())
	respondJSON(w, http.StatusOK, h.engine.Snapshot())
}

func (h *Handlers) GetFeatured(w http.ResponseWriter, r *http.Request) {
	n := intQueryParam(r, "n", catalog.DefaultFeaturedCount)
	respondJSON(w, http.StatusOK, h.engine.SelectFeatured(n))
}

func (h *Handlers) GetNewArrivals(w http.ResponseWriter, r *http.Request) {
	n := intQueryParam(r, "n", catalog.DefaultNewArrivalsCount)
	respondJSON(w, http.StatusOK, h.engine.SelectNewArrivals(n))
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.Categories())
}

func (h *Handlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := h.engine.Search(query)
	h.tracker.TrackSearch(r.Context(), query, len(results), r.URL.String())
	respondJSON(w, http.StatusOK, results)
}

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var view []catalog.Product
	if category != "" {
		view = h.engine.FilterByCategory(category)
		h.tracker.TrackCategoryView(r.Context(), category, len(view), r.URL.String())
	} else {
		view = h.engine.Snapshot().Products
	}

	if sortKey := r.URL.Query().Get("sort"); sortKey != "" {
		dir := catalog.Ascending
		if r.URL.Query().Get("order") == string(catalog.Descending) {
			dir = catalog.Descending
		}
		view = catalog.SortProducts(view, catalog.SortKey(sortKey), dir)
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/catalog/products/")

	product, ok := h.engine.Lookup(id)
	if !ok {
		// Not in the held collection; ask the backend directly.
		fetched, err := h.client.FetchOne(r.Context(), id)
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, productapi.ErrNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
		product = fetched
	}

	h.tracker.TrackProductView(r.Context(), product, r.URL.String())
	respondJSON(w, http.StatusOK, product)
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(sessionID(w, r))
	respondJSON(w, http.StatusOK, map[string]any{
		"items": c.Items(),
		"count": c.Len(),
	})
}

func (h *Handlers) AddCartItem(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(sessionID(w, r))

	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	product, ok := h.engine.Lookup(req.ProductID)
	if !ok {
		fetched, err := h.client.FetchOne(r.Context(), req.ProductID)
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, productapi.ErrNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
		product = fetched
	}

	c.AddOrIncrement(product, req.Quantity)
	h.tracker.TrackAddToCart(r.Context(), product, req.Quantity, r.URL.String())
	respondJSON(w, http.StatusOK, map[string]any{"items": c.Items()})
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(sessionID(w, r))
	productID := extractPathParam(r.URL.Path, "/cart/items/")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c.SetQuantity(productID, req.Quantity)
	respondJSON(w, http.StatusOK, map[string]any{"items": c.Items()})
}

func (h *Handlers) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(sessionID(w, r))
	productID := extractPathParam(r.URL.Path, "/cart/items/")
	c.RemoveItem(productID)
	respondJSON(w, http.StatusOK, map[string]any{"items": c.Items()})
}

func (h *Handlers) GetCartTotals(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(sessionID(w, r))
	respondJSON(w, http.StatusOK, map[string]any{
		"empty":  c.Len() == 0,
		"totals": c.ComputeTotals(),
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// sessionID returns the caller's session id from the X-Session-ID header,
// assigning a fresh one when absent. The id is always echoed back so the
// client can carry it forward.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get("X-Session-ID")
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set("X-Session-ID", id)
	return id
}
