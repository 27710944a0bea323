package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"rollcall/internal/adapters/email"
)

// EmailEscalator forwards ERROR-category notifications to an operator mailbox.
// Other categories pass through untouched.
type EmailEscalator struct {
	sender email.Sender
	to     string
}

// Ensure EmailEscalator implements Notifier.
var _ Notifier = (*EmailEscalator)(nil)

// NewEmailEscalator creates an escalator delivering to the given address.
// PRE: sender is wired; to is a valid address
// POST: Returns a ready-to-use escalator
func NewEmailEscalator(sender email.Sender, to string) *EmailEscalator {
	return &EmailEscalator{sender: sender, to: to}
}

// Notify emails ERROR notifications and ignores the rest.
// POST: Returns the send error, if any; non-error categories never fail
func (e *EmailEscalator) Notify(ctx context.Context, n Notification) error {
	if n.Category != CategoryError {
		return nil
	}

	result, err := e.sender.Send(ctx, email.SendRequest{
		To:      []string{e.to},
		Subject: "Attendance recording error",
		HTML:    "<p>" + html.EscapeString(n.Message) + "</p>",
	})
	if err != nil {
		slog.Error("escalation_send_failed", "error", err, "message", n.Message)
		return fmt.Errorf("escalation send failed: %w", err)
	}

	slog.Info("escalation_sent", "message_id", result.MessageID, "to", e.to)
	return nil
}
