// Package notify provides the tracking and notification sink. The sink is a
// boundary: the workflow core publishes events into it and has no knowledge
// of how customers or ops are actually notified downstream.
package notify

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// SlogNotifier writes every published event to structured logs. It stands in
// for a real push/SMS fan-out; the log stream is the delivery contract for
// downstream consumers.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier writing to the given logger.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

// Publish records the event. Best-effort: it never fails the caller.
func (n *SlogNotifier) Publish(_ context.Context, kind ports.EventKind, payload map[string]any) {
	attrs := make([]any, 0, len(payload)*2)
	for key, value := range payload {
		attrs = append(attrs, slog.Any(key, value))
	}

	n.logger.With(attrs...).Info("event published", slog.String("kind", string(kind)))
}
