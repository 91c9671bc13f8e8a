package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// TransitionOrderCommandHandler executes status transitions on orders.
//
// The handler re-reads the order under its row lock before validating
// preconditions, refreshes the payment status from the payment provider for
// prepaid orders that are not yet marked paid, and persists the transition
// atomically with its history event. Transitions that affect the delivery
// leg carry the assignment along in the same transaction: cancellation
// cancels the active assignment and frees the agent's slot, and
// out-for-delivery advances the assignment to in-transit. The notifications
// are emitted after commit and never fail the transition.
type TransitionOrderCommandHandler struct {
	uowFactory      UoWFactory
	paymentProvider ports.PaymentProvider
	notifier        ports.Notifier
	clock           ports.Clock
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	paymentProvider ports.PaymentProvider,
	notifier ports.Notifier,
	clock ports.Clock,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:      uowFactory,
		paymentProvider: paymentProvider,
		notifier:        notifier,
		clock:           clock,
	}
}

// Handle processes the transition command.
// Fails with order.ErrInvalidTransition or order.ErrPaymentRequired; the
// order is left untouched on any error.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, command TransitionOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	// Prepaid orders that are not yet marked paid get one chance to pick up
	// a settlement the provider processed since the last write.
	if command.TargetStatus().IsPaymentGated() && ord.PaymentMethod().IsPrepaid() {
		paid, provErr := h.paymentProvider.IsPaid(ctx, ord.ID())
		if provErr != nil {
			return provErr
		}
		if paid {
			if err = ord.MarkPaid(); err != nil {
				return err
			}
		}
	}

	oldStatus := ord.Status()

	event, err := ord.Transition(command.TargetStatus(), command.ActorID(), command.Note(), h.clock.Now())
	if err != nil {
		return err
	}

	touched, err := h.carryAssignment(ctx, uow, command)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = orderRepo.AddStatusEvent(ctx, event); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Publish(ctx, ports.EventStatusChanged, map[string]any{
		"order_id":     ord.ID().String(),
		"order_number": ord.OrderNumber(),
		"old_status":   oldStatus.String(),
		"new_status":   ord.Status().String(),
	})

	if touched != nil {
		h.notifier.Publish(ctx, ports.EventAssignmentChanged, map[string]any{
			"order_id":      ord.ID().String(),
			"assignment_id": touched.ID().String(),
			"agent_id":      touched.AgentID().String(),
			"status":        touched.Status().String(),
		})
	}

	return nil
}

// carryAssignment applies the assignment-side effect of the transition, if
// any, and returns the assignment it touched.
func (h TransitionOrderCommandHandler) carryAssignment(
	ctx context.Context,
	uow UoW,
	command TransitionOrderCommand,
) (*assignment.Assignment, error) {
	switch command.TargetStatus() {
	case order.Cancelled:
		assignmentRepo := uow.AssignmentRepository()
		current, err := assignmentRepo.GetActiveByOrderForUpdate(ctx, command.OrderID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			// Nothing in flight to unwind.
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		reason := command.Note()
		if reason == "" {
			reason = "order cancelled"
		}
		if err = current.Cancel(reason); err != nil {
			return nil, err
		}

		agentRepo := uow.AgentRepository()
		ag, err := agentRepo.GetForUpdate(ctx, current.AgentID())
		if err != nil {
			return nil, err
		}
		if err = ag.ReleaseAssignment(); err != nil {
			return nil, err
		}

		if err = assignmentRepo.Update(ctx, current); err != nil {
			return nil, err
		}
		if err = agentRepo.Update(ctx, ag); err != nil {
			return nil, err
		}
		return current, nil

	case order.OutForDelivery:
		assignmentRepo := uow.AssignmentRepository()
		current, err := assignmentRepo.GetActiveByOrderForUpdate(ctx, command.OrderID())
		if err != nil {
			return nil, err
		}
		if err = current.MarkInTransit(); err != nil {
			return nil, err
		}
		if err = assignmentRepo.Update(ctx, current); err != nil {
			return nil, err
		}
		return current, nil

	default:
		return nil, nil
	}
}
