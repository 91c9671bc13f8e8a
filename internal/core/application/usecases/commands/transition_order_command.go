package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand requests a single status transition on an order.
// The allow-list, payment gating and history write are enforced by the
// handler under the order's row lock.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.Confirmed, staffID, "merchant accepted")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); errors.Is(err, order.ErrPaymentRequired) {
//	    // surface 402 to the caller
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	targetStatus order.Status
	actorID      kernel.UUID
	note         string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to move an order to targetStatus.
// The note is optional free text recorded on the history event.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	targetStatus order.Status,
	actorID kernel.UUID,
	note string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTargetStatus(targetStatus),
		cmd.setActorID(actorID),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }

// TargetStatus returns the requested status.
func (c TransitionOrderCommand) TargetStatus() order.Status { return c.targetStatus }

// ActorID returns who requested the transition.
func (c TransitionOrderCommand) ActorID() kernel.UUID { return c.actorID }

// Note returns the optional history note.
func (c TransitionOrderCommand) Note() string { return c.note }

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTargetStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.targetStatus = status
	return nil
}

func (c *TransitionOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}
