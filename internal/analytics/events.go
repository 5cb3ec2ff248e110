package analytics

import "time"

// Event is the record accepted by the analytics collector.
type Event struct {
	ID         string         `json:"id,omitempty"`
	EventType  string         `json:"event_type"`
	EventName  string         `json:"event_name"`
	PageURL    string         `json:"page_url"`
	UserID     string         `json:"user_id,omitempty"`
	SessionID  string         `json:"session_id,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Event types
const (
	TypePageView           = "page_view"
	TypeProductView        = "product_view"
	TypeProductInteraction = "product_interaction"
	TypeCartAction         = "cart_action"
	TypeCategoryView       = "category_view"
	TypeSearch             = "search"
)
