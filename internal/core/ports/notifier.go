package ports

import "context"

// EventKind names the notification kinds emitted toward the tracking and
// notification sink.
type EventKind string

const (
	// EventStatusChanged is emitted after every successful order transition.
	EventStatusChanged EventKind = "status_changed"

	// EventAssignmentChanged is emitted when an assignment is created or
	// changes state.
	EventAssignmentChanged EventKind = "assignment_changed"

	// EventLocationPinged is emitted for every recorded tracking point.
	EventLocationPinged EventKind = "location_pinged"
)

// Notifier is the fire-and-forget notification sink. Publish is best-effort:
// implementations must not block the caller and the core never fails or
// rolls back an operation because the sink is unavailable.
type Notifier interface {
	Publish(ctx context.Context, kind EventKind, payload map[string]any)
}
