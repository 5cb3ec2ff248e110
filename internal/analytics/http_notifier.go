package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPNotifier posts events to the collector's track endpoint.
type HTTPNotifier struct {
	url  string
	http *http.Client
}

// NewHTTPNotifier creates a notifier for the collector rooted at baseURL;
// events go to {baseURL}/analytics/track. A nil httpClient gets a 5s
// timeout default.
func NewHTTPNotifier(baseURL string, httpClient *http.Client) *HTTPNotifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPNotifier{
		url:  strings.TrimRight(baseURL, "/") + "/analytics/track",
		http: httpClient,
	}
}

// Notify delivers one event.
func (n *HTTPNotifier) Notify(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("analytics tracking failed: HTTP %d", resp.StatusCode)
	}
	return nil
}
