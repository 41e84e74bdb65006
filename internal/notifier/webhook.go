package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// WebhookPayload is the request body expected by an Apprise API
// endpoint. Apprise fans the notification out to the target service
// URLs (mailto://, tgram://, etc).
type WebhookPayload struct {
	URLs   []string `json:"urls"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Type   string   `json:"type"`
	Format string   `json:"format"`
}

// WebhookNotifier delivers the run summary through an Apprise API
// endpoint, as an alternative to direct SMTP.
type WebhookNotifier struct {
	WebhookURL string
	TargetURLs []string

	client *http.Client
	logger zerolog.Logger
}

func NewWebhookNotifier(webhookURL string, targetURLs []string, logger zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		WebhookURL: webhookURL,
		TargetURLs: targetURLs,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

func (w *WebhookNotifier) SendNotification(ctx context.Context, subject, body string) error {
	if len(w.TargetURLs) == 0 {
		w.logger.Debug().Msg("no webhook targets configured, skipping notification")
		return nil
	}

	payload := WebhookPayload{
		URLs:   w.TargetURLs,
		Title:  subject,
		Body:   body,
		Type:   "info",
		Format: "html",
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return &NotificationError{Transport: "webhook", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.WebhookURL, bytes.NewBuffer(data))
	if err != nil {
		return &NotificationError{Transport: "webhook", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return &NotificationError{Transport: "webhook", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &NotificationError{
			Transport: "webhook",
			Err:       fmt.Errorf("webhook request failed with status code: %d", resp.StatusCode),
		}
	}

	w.logger.Info().Int("targets", len(w.TargetURLs)).Msg("webhook notification sent")
	return nil
}

var _ Notifier = (*WebhookNotifier)(nil)
