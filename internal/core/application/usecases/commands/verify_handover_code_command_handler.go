package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// VerifyHandoverCodeCommandHandler verifies merchant handover codes and
// executes the pickup.
//
// The TTL store is consulted and the code consumed before the order-row
// lock is taken, keeping lock hold time bounded. Consumption is the
// delete-and-count operation: under concurrent submissions of the same code
// exactly one caller observes the delete and proceeds; replays fail with
// ErrCodeExpiredOrMissing.
type VerifyHandoverCodeCommandHandler struct {
	uowFactory UoWFactory
	ttlStore   ports.TTLStore
	notifier   ports.Notifier
	clock      ports.Clock
}

// NewVerifyHandoverCodeCommandHandler creates a handler verifying merchant
// handover codes.
func NewVerifyHandoverCodeCommandHandler(
	uowFactory UoWFactory,
	ttlStore ports.TTLStore,
	notifier ports.Notifier,
	clock ports.Clock,
) VerifyHandoverCodeCommandHandler {
	return VerifyHandoverCodeCommandHandler{
		uowFactory: uowFactory,
		ttlStore:   ttlStore,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle verifies the submitted code. On match the order moves to
// HandedToCourier and its assignment to PickedUp in one transaction.
// Fails with ErrCodeExpiredOrMissing or ErrInvalidCode; a mismatch leaves
// the live code in place for another attempt.
func (h VerifyHandoverCodeCommandHandler) Handle(ctx context.Context, command VerifyHandoverCodeCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	key := merchantHandoverKey(command.OrderID())

	liveCode, found, err := h.ttlStore.Get(ctx, key)
	if err != nil {
		return err
	}
	if !found {
		return ErrCodeExpiredOrMissing
	}
	if liveCode != command.SubmittedCode() {
		return ErrInvalidCode
	}

	deleted, err := h.ttlStore.Delete(ctx, key)
	if err != nil {
		return err
	}
	if !deleted {
		// A concurrent verification consumed the code between Get and Delete.
		return ErrCodeExpiredOrMissing
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	assignmentRepo := uow.AssignmentRepository()

	ord, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	current, err := assignmentRepo.GetActiveByOrderForUpdate(ctx, ord.ID())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	oldStatus := ord.Status()

	var events []*order.StatusEvent

	// Codes may be issued while the order is still Packed. A successful
	// verification at the counter implies the package is ready, so the order
	// is walked through ReadyForPickup and both steps land in the history.
	if ord.Status() == order.Packed {
		readyEvent, readyErr := ord.Transition(order.ReadyForPickup, current.AgentID(), "store handover confirmed", now)
		if readyErr != nil {
			return readyErr
		}
		events = append(events, readyEvent)
	}

	event, err := ord.Transition(order.HandedToCourier, current.AgentID(), "store handover confirmed", now)
	if err != nil {
		return err
	}
	events = append(events, event)

	if err = current.MarkPickedUp(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}
	for _, e := range events {
		if err = orderRepo.AddStatusEvent(ctx, e); err != nil {
			return err
		}
	}
	if err = assignmentRepo.Update(ctx, current); err != nil {
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
	h.notifier.Publish(ctx, ports.EventAssignmentChanged, map[string]any{
		"order_id":      ord.ID().String(),
		"assignment_id": current.ID().String(),
		"agent_id":      current.AgentID().String(),
		"status":        current.Status().String(),
	})

	return nil
}
