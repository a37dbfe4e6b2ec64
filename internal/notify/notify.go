// Package notify pushes compile results to chat channels.
package notify

import "context"

// Event types
const (
	EventSuccess = "on_success"
	EventFailure = "on_failure"
)

// Notifier delivers a message for an event type. Implementations decide
// whether the event is enabled.
type Notifier interface {
	Notify(ctx context.Context, eventType, message string) error
}

// Noop discards all notifications.
type Noop struct{}

// Notify implements Notifier.
func (Noop) Notify(ctx context.Context, eventType, message string) error {
	return nil
}
