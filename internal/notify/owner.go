package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

const (
	TitleMaxLength   = 1200
	ContentMaxLength = 20000
)

var (
	// ErrInvalidNotification wraps every payload validation failure.
	ErrInvalidNotification = errors.New("invalid notification")
	// ErrNotConfigured means no webhook endpoint or key was provided.
	ErrNotConfigured = errors.New("owner notification service is not configured")
)

// Notification is a push message for the site owner.
type Notification struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Normalize trims both fields and enforces the length limits.
func (n Notification) Normalize() (Notification, error) {
	title := strings.TrimSpace(n.Title)
	content := strings.TrimSpace(n.Content)
	switch {
	case title == "":
		return n, fmt.Errorf("%w: title is required", ErrInvalidNotification)
	case content == "":
		return n, fmt.Errorf("%w: content is required", ErrInvalidNotification)
	case utf8.RuneCountInString(title) > TitleMaxLength:
		return n, fmt.Errorf("%w: title must be at most %d characters", ErrInvalidNotification, TitleMaxLength)
	case utf8.RuneCountInString(content) > ContentMaxLength:
		return n, fmt.Errorf("%w: content must be at most %d characters", ErrInvalidNotification, ContentMaxLength)
	}
	return Notification{Title: title, Content: content}, nil
}

// OwnerNotifier delivers a message to the site owner. delivered is false when
// the service answered with a failure; err is reserved for payloads that can
// never be sent and for missing configuration.
type OwnerNotifier interface {
	NotifyOwner(ctx context.Context, n Notification) (delivered bool, err error)
}

// WebhookNotifier posts notifications as JSON to an HTTP endpoint with a
// bearer key.
type WebhookNotifier struct {
	client   *resty.Client
	endpoint string
	apiKey   string
}

// NewWebhookNotifier returns a notifier posting to endpoint.
func NewWebhookNotifier(endpoint, apiKey string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		client:   resty.New().SetTimeout(timeout),
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

// NotifyOwner sends n. Transport errors and non-2xx answers are logged and
// reported as not delivered.
func (w *WebhookNotifier) NotifyOwner(ctx context.Context, n Notification) (bool, error) {
	n, err := n.Normalize()
	if err != nil {
		return false, err
	}
	if w.endpoint == "" || w.apiKey == "" {
		return false, ErrNotConfigured
	}

	resp, err := w.client.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"Authorization": "Bearer " + w.apiKey,
			"Accept":        "application/json",
			"Content-Type":  "application/json",
		}).
		SetBody(n).
		Post(w.endpoint)
	if err != nil {
		log.Printf("[Notification] Error calling notification service: %v", err)
		return false, nil
	}
	if !resp.IsSuccess() {
		detail := strings.TrimSpace(string(resp.Body()))
		if detail != "" {
			detail = ": " + detail
		}
		log.Printf("[Notification] Failed to notify owner (%s)%s", resp.Status(), detail)
		return false, nil
	}
	return true, nil
}
