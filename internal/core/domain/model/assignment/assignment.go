package assignment

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Domain errors for assignment operations.
var (
	// ErrAssignmentIsNotConstructed is returned when using an improperly initialized Assignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

	// ErrAssignmentAlreadyTerminal is returned when mutating an assignment
	// that already reached Delivered, Cancelled or Failed.
	ErrAssignmentAlreadyTerminal = errors.New("assignment is already in a terminal state")

	// ErrReassignmentNotAllowed is returned when reassigning an assignment
	// after the courier took custody of the package.
	ErrReassignmentNotAllowed = errors.New("assignment can no longer be reassigned")

	// ErrInvalidAssignmentTransition is returned for any other disallowed
	// status move.
	ErrInvalidAssignmentTransition = errors.New("invalid assignment status transition")

	// ErrReasonIsRequired is returned when cancelling or failing an
	// assignment without a reason.
	ErrReasonIsRequired = errs.NewValueIsRequiredError("reason")
)

// Assignment binds one order to one delivery agent. It is an aggregate root
// that records the delivery timeline and the route estimate made at
// assignment time.
//
// Business rules:
//   - the status machine only moves forward; terminal assignments are immutable
//   - reassignment is possible only before pickup; afterwards the courier has
//     the package and the binding is fixed
//   - Cancel and Fail always carry a reason
type Assignment struct {
	id      kernel.UUID
	orderID kernel.UUID
	agentID kernel.UUID

	status Status

	assignedAt  time.Time
	acceptedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	estimatedDistanceKm  decimal.Decimal
	estimatedTimeMinutes int
	actualTimeMinutes    *int

	cancellationReason *string

	guard guard.ConstructorGuard
}

// NewAssignment creates an assignment in Assigned state with the route
// estimate computed by the engine at selection time.
func NewAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	agentID kernel.UUID,
	estimatedDistanceKm decimal.Decimal,
	estimatedTimeMinutes int,
	assignedAt time.Time,
) (*Assignment, error) {
	a := &Assignment{
		status:     Assigned,
		assignedAt: assignedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setAgentID(agentID),
		a.setEstimate(estimatedDistanceKm, estimatedTimeMinutes),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment reconstructs an Assignment from persistent storage.
func RestoreAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	agentID kernel.UUID,
	status Status,
	assignedAt time.Time,
	acceptedAt *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
	estimatedDistanceKm decimal.Decimal,
	estimatedTimeMinutes int,
	actualTimeMinutes *int,
	cancellationReason *string,
) (*Assignment, error) {
	a := &Assignment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setAgentID(agentID),
		status.Validate(),
		a.setEstimate(estimatedDistanceKm, estimatedTimeMinutes),
	); err != nil {
		return nil, err
	}

	a.status = status
	a.assignedAt = assignedAt
	a.acceptedAt = acceptedAt
	a.pickedUpAt = pickedUpAt
	a.deliveredAt = deliveredAt
	a.actualTimeMinutes = actualTimeMinutes
	a.cancellationReason = cancellationReason

	return a, nil
}

// Validate ensures the assignment was created through a constructor.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// IsEqual compares two assignments by their unique identifiers.
func (a *Assignment) IsEqual(other *Assignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID { return a.id }

// OrderID returns the order being delivered.
func (a *Assignment) OrderID() kernel.UUID { return a.orderID }

// AgentID returns the agent handling the delivery.
func (a *Assignment) AgentID() kernel.UUID { return a.agentID }

// Status returns the current lifecycle state.
func (a *Assignment) Status() Status { return a.status }

// AssignedAt returns when the engine created the assignment.
func (a *Assignment) AssignedAt() time.Time { return a.assignedAt }

// AcceptedAt returns when the agent accepted, nil if they never did.
func (a *Assignment) AcceptedAt() *time.Time { return a.acceptedAt }

// PickedUpAt returns when custody passed to the agent, nil before pickup.
func (a *Assignment) PickedUpAt() *time.Time { return a.pickedUpAt }

// DeliveredAt returns when the delivery completed, nil before that.
func (a *Assignment) DeliveredAt() *time.Time { return a.deliveredAt }

// EstimatedDistanceKm returns the route distance estimated at assignment time.
func (a *Assignment) EstimatedDistanceKm() decimal.Decimal { return a.estimatedDistanceKm }

// EstimatedTimeMinutes returns the delivery time estimated at assignment time.
func (a *Assignment) EstimatedTimeMinutes() int { return a.estimatedTimeMinutes }

// ActualTimeMinutes returns the measured assignment-to-delivery duration,
// nil until delivered.
func (a *Assignment) ActualTimeMinutes() *int { return a.actualTimeMinutes }

// CancellationReason returns why the assignment was cancelled or failed,
// nil otherwise.
func (a *Assignment) CancellationReason() *string { return a.cancellationReason }

// IsTerminal reports whether the assignment reached a final state.
func (a *Assignment) IsTerminal() bool {
	return a.status.IsTerminal()
}

// CanReassign reports whether the order may still be handed to a different
// agent. Only Assigned and Accepted qualify.
func (a *Assignment) CanReassign() bool {
	return a.status == Assigned || a.status == Accepted
}

// Accept records the agent's confirmation.
func (a *Assignment) Accept(now time.Time) error {
	if err := a.transition(Accepted); err != nil {
		return err
	}
	ts := now
	a.acceptedAt = &ts
	return nil
}

// MarkPickedUp records that the merchant handover code was verified and the
// agent took custody. Valid from Assigned or Accepted.
func (a *Assignment) MarkPickedUp(now time.Time) error {
	if err := a.transition(PickedUp); err != nil {
		return err
	}
	ts := now
	a.pickedUpAt = &ts
	return nil
}

// MarkInTransit records that the agent is en route to the customer.
func (a *Assignment) MarkInTransit() error {
	return a.transition(InTransit)
}

// MarkDelivered records the verified delivery and derives the actual
// delivery time from the assignment timestamp.
func (a *Assignment) MarkDelivered(now time.Time) error {
	if err := a.transition(Delivered); err != nil {
		return err
	}
	ts := now
	a.deliveredAt = &ts
	minutes := int(now.Sub(a.assignedAt).Minutes())
	a.actualTimeMinutes = &minutes
	return nil
}

// Cancel terminates the assignment with a reason. Used by explicit
// reassignment, the acceptance timeout sweep, and order cancellation.
func (a *Assignment) Cancel(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}
	if err := a.transition(Cancelled); err != nil {
		return err
	}
	a.cancellationReason = &reason
	return nil
}

// Fail terminates the assignment with a reason when the delivery could not
// be completed.
func (a *Assignment) Fail(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}
	if err := a.transition(Failed); err != nil {
		return err
	}
	a.cancellationReason = &reason
	return nil
}

func (a *Assignment) transition(target Status) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrAssignmentAlreadyTerminal, a.status)
	}
	if !a.status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s cannot move to %s", ErrInvalidAssignmentTransition, a.status, target)
	}
	a.status = target
	return nil
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("order id: %w", err)
	}
	a.orderID = id
	return nil
}

func (a *Assignment) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("agent id: %w", err)
	}
	a.agentID = id
	return nil
}

func (a *Assignment) setEstimate(distanceKm decimal.Decimal, timeMinutes int) error {
	if distanceKm.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("estimated distance",
			fmt.Errorf("%s is negative", distanceKm))
	}
	if timeMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimated time",
			fmt.Errorf("%d is negative", timeMinutes))
	}
	a.estimatedDistanceKm = distanceKm
	a.estimatedTimeMinutes = timeMinutes
	return nil
}
