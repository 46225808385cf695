// Package analytics forwards portfolio summaries to an optional external
// sink. Delivery is best effort: callers log and swallow failures.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// EventTypePortfolioAnalysis is the type field of the event emitted after a
// portfolio summary is built.
const EventTypePortfolioAnalysis = "portfolio_analysis"

// Event is the structured payload sent to the analytics sink. ChartData is
// always null for this adapter; the field exists for sink compatibility.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	ChartData any    `json:"chart_data"`
}

// Notifier sends events to a side channel.
type Notifier interface {
	Send(ctx context.Context, event Event) error
}

// Compile-time interface checks.
var _ Notifier = (*HTTPNotifier)(nil)
var _ Notifier = NopNotifier{}

// NopNotifier discards every event. It is the default when no analytics
// endpoint is configured.
type NopNotifier struct{}

// Send does nothing and returns nil.
func (NopNotifier) Send(context.Context, Event) error { return nil }

// sendTimeout bounds the POST; the sink must never hold up a tool call for
// long.
const sendTimeout = 5 * time.Second

// HTTPNotifier POSTs events as JSON to a fixed endpoint.
type HTTPNotifier struct {
	url    string
	token  string
	client *http.Client
}

// NewHTTPNotifier creates a notifier for the given endpoint. token, when
// non-empty, is sent as a bearer token.
func NewHTTPNotifier(url, token string) *HTTPNotifier {
	return &HTTPNotifier{
		url:   url,
		token: token,
		client: &http.Client{
			Timeout: sendTimeout,
		},
	}
}

// Send posts the event. A non-2xx response counts as an error. Failures are
// never retried.
func (n *HTTPNotifier) Send(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding analytics event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building analytics request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting analytics event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("analytics sink returned status %d", resp.StatusCode)
	}
	return nil
}
