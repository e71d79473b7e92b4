// Package notify delivers invoice lifecycle events to an external webhook.
package notify

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"invoicehub/internal/models"
)

// Event names for invoice lifecycle notifications.
const (
	EventInvoiceCreated = "invoice.created"
	EventInvoiceUpdated = "invoice.updated"
	EventInvoiceDeleted = "invoice.deleted"
)

// Event is the webhook payload.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Invoice    *models.Invoice `json:"invoice"`
}

// Webhook posts events to a configured URL. Delivery is fire-and-forget;
// failures are logged and never surfaced to the request path.
type Webhook struct {
	client *resty.Client
	url    string
	logger *zap.Logger
}

// NewWebhook creates a notifier for the given URL.
func NewWebhook(url string, logger *zap.Logger) *Webhook {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)

	return &Webhook{client: client, url: url, logger: logger}
}

// Notify posts an event asynchronously.
func (w *Webhook) Notify(eventType string, invoice *models.Invoice) {
	if w == nil || w.url == "" {
		return
	}

	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Invoice:    invoice,
	}

	go func() {
		resp, err := w.client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(event).
			Post(w.url)
		if err != nil {
			w.logger.Warn("Webhook delivery failed",
				zap.String("event", eventType),
				zap.Error(err))
			return
		}
		if resp.IsError() {
			w.logger.Warn("Webhook endpoint returned an error",
				zap.String("event", eventType),
				zap.Int("status", resp.StatusCode()))
		}
	}()
}
