package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/example/storefront/internal/analytics"
	"github.com/example/storefront/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNotifier records delivered events
type mockNotifier struct {
	mu     sync.Mutex
	events []analytics.Event
	err    error
}

func (m *mockNotifier) Notify(ctx context.Context, event analytics.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.err
}

func (m *mockNotifier) delivered() []analytics.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]analytics.Event(nil), m.events...)
}

// ============================================
// Tracker Tests
// ============================================

func TestTracker_Track_StampsIdentity(t *testing.T) {
	notifier := &mockNotifier{}
	tracker := analytics.NewTracker(notifier)

	tracker.Track(context.Background(), analytics.Event{
		EventType: analytics.TypePageView,
		EventName: "home_visited",
		PageURL:   "/",
	})

	events := notifier.delivered()
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
	assert.NotEmpty(t, events[0].SessionID)
	assert.NotEmpty(t, events[0].UserID)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, "home_visited", events[0].EventName)
}

func TestTracker_Track_SameSessionAcrossEvents(t *testing.T) {
	notifier := &mockNotifier{}
	tracker := analytics.NewTracker(notifier)

	tracker.TrackPageView(context.Background(), "home", "/")
	tracker.TrackPageView(context.Background(), "cart", "/cart")

	events := notifier.delivered()
	require.Len(t, events, 2)
	assert.Equal(t, events[0].SessionID, events[1].SessionID)
	assert.Equal(t, events[0].UserID, events[1].UserID)
	assert.NotEqual(t, events[0].ID, events[1].ID)
}

func TestTracker_Track_SwallowsDeliveryFailure(t *testing.T) {
	notifier := &mockNotifier{err: errors.New("collector down")}
	tracker := analytics.NewTracker(notifier)

	// Must not panic or surface the error in any way.
	tracker.TrackPageView(context.Background(), "home", "/")

	assert.Len(t, notifier.delivered(), 1)
}

func TestTracker_NilNotifierDropsEvents(t *testing.T) {
	tracker := analytics.NewTracker(nil)

	tracker.TrackPageView(context.Background(), "home", "/")
	tracker.TrackSearch(context.Background(), "shoes", 3, "/catalog/search")
}

func TestTracker_TrackAddToCart_Properties(t *testing.T) {
	notifier := &mockNotifier{}
	tracker := analytics.NewTracker(notifier)
	product := catalog.Product{ID: "p1", Name: "Wireless Headphones", Price: 7999, Category: "Electronics"}

	tracker.TrackAddToCart(context.Background(), product, 2, "/catalog/products/p1")

	events := notifier.delivered()
	require.Len(t, events, 1)
	assert.Equal(t, analytics.TypeCartAction, events[0].EventType)
	assert.Equal(t, "add_to_cart", events[0].EventName)
	assert.Equal(t, "p1", events[0].Properties["product_id"])
	assert.Equal(t, "Wireless Headphones", events[0].Properties["product_name"])
	assert.Equal(t, int64(7999), events[0].Properties["product_price"])
	assert.Equal(t, "Electronics", events[0].Properties["product_category"])
	assert.Equal(t, 2, events[0].Properties["quantity"])
}

func TestTracker_TrackSearch_Properties(t *testing.T) {
	notifier := &mockNotifier{}
	tracker := analytics.NewTracker(notifier)

	tracker.TrackSearch(context.Background(), "coffee", 4, "/catalog/search?q=coffee")

	events := notifier.delivered()
	require.Len(t, events, 1)
	assert.Equal(t, analytics.TypeSearch, events[0].EventType)
	assert.Equal(t, "coffee", events[0].Properties["search_term"])
	assert.Equal(t, 4, events[0].Properties["results_count"])
}

func TestTracker_TrackCategoryView_Properties(t *testing.T) {
	notifier := &mockNotifier{}
	tracker := analytics.NewTracker(notifier)

	tracker.TrackCategoryView(context.Background(), "Electronics", 7, "/catalog/products?category=Electronics")

	events := notifier.delivered()
	require.Len(t, events, 1)
	assert.Equal(t, "category_viewed", events[0].EventName)
	assert.Equal(t, "Electronics", events[0].Properties["category_name"])
	assert.Equal(t, 7, events[0].Properties["product_count"])
}

// ============================================
// HTTPNotifier Tests
// ============================================

func TestHTTPNotifier_PostsEvent(t *testing.T) {
	var got analytics.Event
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/analytics/track", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	notifier := analytics.NewHTTPNotifier(server.URL+"/api/v1", nil)
	err := notifier.Notify(context.Background(), analytics.Event{
		EventType: analytics.TypeSearch,
		EventName: "product_search",
		SessionID: "session-abc",
	})

	require.NoError(t, err)
	assert.Equal(t, "product_search", got.EventName)
	assert.Equal(t, "session-abc", got.SessionID)
}

func TestHTTPNotifier_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	notifier := analytics.NewHTTPNotifier(server.URL, nil)
	err := notifier.Notify(context.Background(), analytics.Event{EventName: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPNotifier_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	notifier := analytics.NewHTTPNotifier(server.URL, nil)
	err := notifier.Notify(context.Background(), analytics.Event{EventName: "x"})

	assert.Error(t, err)
}
