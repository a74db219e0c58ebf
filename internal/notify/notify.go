package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Kadhiravan2002/AuraX/internal"
)

// Event is the payload sent after a successful import.
type Event struct {
	UserID   string `json:"user_id"`
	Added    int    `json:"added"`
	Replaced int    `json:"replaced"`
	Skipped  int    `json:"skipped"`
	Checksum string `json:"checksum"`
}

// Notifier receives a fire-and-forget signal after a successful import.
// Failures must never fail the import; callers log and move on.
type Notifier interface {
	ImportCompleted(ctx context.Context, event Event) error
}

type NoopNotifier struct{}

func (NoopNotifier) ImportCompleted(ctx context.Context, event Event) error { return nil }

// WebhookNotifier POSTs the event JSON to a configured URL.
type WebhookNotifier struct {
	URL        string
	HTTPClient *http.Client
	logger     internal.Logger
}

func NewWebhookNotifier(url string, logger internal.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

func (n *WebhookNotifier) ImportCompleted(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", n.URL, bytes.NewReader(body))
	if err != nil {
		n.logger.Errorf("notify: failed to create request: %v", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.HTTPClient.Do(req)
	if err != nil {
		n.logger.Errorf("notify: failed to call webhook: %v", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.logger.Errorf("notify: webhook returned %d", resp.StatusCode)
		return errors.New("notify: webhook returned non-2xx")
	}
	return nil
}
