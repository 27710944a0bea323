package notify

import "context"

// Category is the user-facing status class of a notification.
type Category string

const (
	CategorySuccess   Category = "SUCCESS"
	CategoryAttention Category = "ATTENTION"
	CategoryError     Category = "ERROR"
	CategoryReady     Category = "Ready"
)

// Notification is one (category, message) pair for the external UI sink.
type Notification struct {
	Category Category
	Message  string
}

// Notifier is the interface for emitting notifications to an external sink.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
