package analytics

import (
	"context"
	"log"
	"time"

	"github.com/example/storefront/internal/catalog"
	"github.com/google/uuid"
)

// Notifier delivers events to the analytics collector.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Tracker stamps events with session identity and hands them to the
// notifier. Delivery failures are logged and swallowed; tracking must never
// break or block the caller's flow.
type Tracker struct {
	notifier  Notifier
	sessionID string
	userID    string
	now       func() time.Time
}

// NewTracker creates a tracker with fresh session and anonymous user ids.
// A nil notifier yields a tracker that drops every event.
func NewTracker(notifier Notifier) *Tracker {
	return &Tracker{
		notifier:  notifier,
		sessionID: "session-" + uuid.NewString(),
		userID:    "user-" + uuid.NewString(),
		now:       time.Now,
	}
}

// Track stamps and delivers one event.
func (t *Tracker) Track(ctx context.Context, event Event) {
	if t == nil || t.notifier == nil {
		return
	}
	event.ID = uuid.NewString()
	event.SessionID = t.sessionID
	if event.UserID == "" {
		event.UserID = t.userID
	}
	event.Timestamp = t.now().UTC()

	if err := t.notifier.Notify(ctx, event); err != nil {
		log.Printf("[Analytics] Failed to track %s: %v", event.EventName, err)
	}
}

// TrackPageView records a visit to a named page.
func (t *Tracker) TrackPageView(ctx context.Context, pageName, pageURL string) {
	t.Track(ctx, Event{
		EventType: TypePageView,
		EventName: pageName + "_visited",
		PageURL:   pageURL,
	})
}

// TrackProductView records a product detail view.
func (t *Tracker) TrackProductView(ctx context.Context, product catalog.Product, pageURL string) {
	t.Track(ctx, Event{
		EventType:  TypeProductView,
		EventName:  "product_viewed",
		PageURL:    pageURL,
		Properties: productProperties(product),
	})
}

// TrackProductCardClick records a product card interaction.
func (t *Tracker) TrackProductCardClick(ctx context.Context, product catalog.Product, pageURL string) {
	t.Track(ctx, Event{
		EventType:  TypeProductInteraction,
		EventName:  "product_card_clicked",
		PageURL:    pageURL,
		Properties: productProperties(product),
	})
}

// TrackAddToCart records a product being added to the cart.
func (t *Tracker) TrackAddToCart(ctx context.Context, product catalog.Product, quantity int, pageURL string) {
	props := productProperties(product)
	props["quantity"] = quantity
	t.Track(ctx, Event{
		EventType:  TypeCartAction,
		EventName:  "add_to_cart",
		PageURL:    pageURL,
		Properties: props,
	})
}

// TrackCategoryView records a category listing view.
func (t *Tracker) TrackCategoryView(ctx context.Context, categoryName string, productCount int, pageURL string) {
	t.Track(ctx, Event{
		EventType: TypeCategoryView,
		EventName: "category_viewed",
		PageURL:   pageURL,
		Properties: map[string]any{
			"category_name": categoryName,
			"product_count": productCount,
		},
	})
}

// TrackSearch records a product search and its result count.
func (t *Tracker) TrackSearch(ctx context.Context, searchTerm string, resultsCount int, pageURL string) {
	t.Track(ctx, Event{
		EventType: TypeSearch,
		EventName: "product_search",
		PageURL:   pageURL,
		Properties: map[string]any{
			"search_term":   searchTerm,
			"results_count": resultsCount,
		},
	})
}

func productProperties(product catalog.Product) map[string]any {
	return map[string]any{
		"product_id":       product.ID,
		"product_name":     product.Name,
		"product_price":    product.Price,
		"product_category": product.Category,
	}
}
