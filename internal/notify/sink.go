package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/uniportal/results-portal-api/internal/models"
)

// Sink delivers one notification payload to a named channel. Failure detail
// is opaque beyond the returned error.
type Sink interface {
	Push(ctx context.Context, channel models.Channel, notification models.Notification) error
}

// HTTPSink POSTs notifications as JSON to per-channel endpoint URLs.
type HTTPSink struct {
	endpoints map[string]string
	client    *http.Client
}

// NewHTTPSink builds a sink from a channel -> URL map.
func NewHTTPSink(endpoints map[string]string, timeout time.Duration) *HTTPSink {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPSink{
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
	}
}

// Push sends the notification to the channel endpoint. Any non-2xx status
// counts as a failed delivery.
func (s *HTTPSink) Push(ctx context.Context, channel models.Channel, notification models.Notification) error {
	endpoint, ok := s.endpoints[string(channel)]
	if !ok {
		return fmt.Errorf("no endpoint configured for channel %s", channel)
	}

	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request for %s: %w", channel, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push to %s: %w", channel, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("push to %s: unexpected status %d", channel, resp.StatusCode)
	}
	return nil
}
