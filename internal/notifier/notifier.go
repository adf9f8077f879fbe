package notifier

import (
	"context"
	"errors"
)

// Notifier delivers a short HTML-formatted report to a channel.
type Notifier interface {
	Notify(ctx context.Context, subject, text string) error
}

// NoopNotifier drops every message. Used when no channel is configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(_ context.Context, _, _ string) error { return nil }

// Multi fans a message out to several notifiers.
type Multi []Notifier

// Notify sends to every channel and joins the failures.
func (m Multi) Notify(ctx context.Context, subject, text string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, subject, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
