package notify

import (
	"context"
	"errors"
)

// MultiNotifier fans one notification out to several sinks. Every sink is
// attempted; failures are joined rather than short-circuiting.
type MultiNotifier []Notifier

// Notify delivers to all sinks.
// POST: Returns the joined errors of the sinks that failed, or nil
func (m MultiNotifier) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
