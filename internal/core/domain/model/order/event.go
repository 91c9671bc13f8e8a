package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrStatusEventIsNotConstructed is returned when a StatusEvent was not created
// through the NewStatusEvent constructor.
var ErrStatusEventIsNotConstructed = errors.New("StatusEvent must be created via NewStatusEvent constructor")

// StatusEvent is an append-only history record of a single status transition.
// Events are write-once: they are created by Order.Transition, persisted in the
// same unit of work as the order mutation, and never updated or deleted.
type StatusEvent struct {
	id         kernel.UUID
	orderID    kernel.UUID
	fromStatus Status
	status     Status
	actorID    kernel.UUID
	note       string
	occurredAt time.Time
	guard      guard.ConstructorGuard
}

// NewStatusEvent creates a history record for a transition that moved the
// order from fromStatus into status at occurredAt. The note is optional free
// text shown in the order timeline.
func NewStatusEvent(
	orderID kernel.UUID,
	fromStatus Status,
	status Status,
	actorID kernel.UUID,
	note string,
	occurredAt time.Time,
) (*StatusEvent, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := fromStatus.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := actorID.Validate(); err != nil {
		return nil, err
	}

	return &StatusEvent{
		id:         kernel.NewUUID(),
		orderID:    orderID,
		fromStatus: fromStatus,
		status:     status,
		actorID:    actorID,
		note:       note,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreStatusEvent reconstructs a StatusEvent from persistence.
func RestoreStatusEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	fromStatus Status,
	status Status,
	actorID kernel.UUID,
	note string,
	occurredAt time.Time,
) (*StatusEvent, error) {
	if err := errors.Join(
		id.Validate(), orderID.Validate(), fromStatus.Validate(), status.Validate(), actorID.Validate(),
	); err != nil {
		return nil, err
	}

	return &StatusEvent{
		id:         id,
		orderID:    orderID,
		fromStatus: fromStatus,
		status:     status,
		actorID:    actorID,
		note:       note,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the event was created through a constructor.
func (e *StatusEvent) Validate() error {
	if e == nil {
		return ErrStatusEventIsNotConstructed
	}
	return e.guard.Validate(ErrStatusEventIsNotConstructed)
}

// ID returns the event's unique identifier.
func (e *StatusEvent) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order the event belongs to.
func (e *StatusEvent) OrderID() kernel.UUID {
	return e.orderID
}

// FromStatus returns the status the order left.
func (e *StatusEvent) FromStatus() Status {
	return e.fromStatus
}

// Status returns the status the order entered.
func (e *StatusEvent) Status() Status {
	return e.status
}

// ActorID returns who performed the transition.
func (e *StatusEvent) ActorID() kernel.UUID {
	return e.actorID
}

// Note returns the optional free-text note.
func (e *StatusEvent) Note() string {
	return e.note
}

// OccurredAt returns when the transition happened.
func (e *StatusEvent) OccurredAt() time.Time {
	return e.occurredAt
}
