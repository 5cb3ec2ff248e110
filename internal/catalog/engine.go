package catalog

import (
	"context"
	"sync"
)

// State is the fetch lifecycle state of the engine.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Engine owns the product collection for one session and derives read-only
// views over it. The collection is fetched as a whole: a refetch either
// replaces it entirely or leaves it untouched and records the failure.
type Engine struct {
	client FetchClient

	mu         sync.Mutex
	state      State
	errMsg     string
	products   []Product
	generation uint64
}

// NewEngine creates an engine in the idle state. Call Refetch to load the
// collection.
func NewEngine(client FetchClient) *Engine {
	return &Engine{
		client: client,
		state:  StateIdle,
	}
}

// Snapshot is one consistent read of the engine for the presentation layer.
// Products is populated only in the ready state.
type Snapshot struct {
	State    State     `json:"state"`
	Error    string    `json:"error,omitempty"`
	Products []Product `json:"products"`
}

// Refetch loads the full product collection, transitioning loading -> ready
// on success or loading -> failed on error. If another Refetch starts while
// this one is in flight, the stale resolution is discarded so the newest
// request determines the final state.
func (e *Engine) Refetch(ctx context.Context) {
	e.mu.Lock()
	e.state = StateLoading
	e.errMsg = ""
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	products, err := e.client.FetchAll(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.generation {
		// Superseded by a newer refetch.
		return
	}
	if err != nil {
		e.state = StateFailed
		e.errMsg = err.Error()
		return
	}
	e.state = StateReady
	e.products = products
}

// State returns the current fetch lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Err returns the failure message from the last fetch, empty unless the
// engine is in the failed state.
func (e *Engine) Err() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errMsg
}

// Snapshot returns state, error and collection in one consistent read.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := Snapshot{
		State:    e.state,
		Error:    e.errMsg,
		Products: []Product{},
	}
	if e.state == StateReady {
		snap.Products = make([]Product, len(e.products))
		copy(snap.Products, e.products)
	}
	return snap
}

// collection returns a copy of the held products, or an empty slice when
// the engine is not ready. Queries operate on the copy so no derived view
// can mutate the source collection.
func (e *Engine) collection() []Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateReady {
		return []Product{}
	}
	out := make([]Product, len(e.products))
	copy(out, e.products)
	return out
}
