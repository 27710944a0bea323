package notify

import (
	"context"
	"log/slog"
)

// SlogNotifier emits notifications to the structured log. It is the default
// notification sink for a headless deployment.
type SlogNotifier struct{}

// NewSlogNotifier creates a new SlogNotifier.
func NewSlogNotifier() *SlogNotifier {
	return &SlogNotifier{}
}

// Notify logs the notification.
// POST: Never fails
func (*SlogNotifier) Notify(_ context.Context, n Notification) error {
	slog.Info("user_msg", "category", string(n.Category), "message", n.Message)
	return nil
}
