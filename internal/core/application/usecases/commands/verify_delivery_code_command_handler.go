package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// VerifyDeliveryCodeCommandHandler verifies customer delivery codes and
// completes deliveries.
//
// Code lookup and consumption precede the row locks, mirroring the merchant
// handover flow. On match one transaction moves the order to Delivered, the
// assignment to Delivered with its actual delivery time, writes the proof
// of delivery, releases the agent's in-flight slot and bumps the agent's
// lifetime counters.
type VerifyDeliveryCodeCommandHandler struct {
	uowFactory UoWFactory
	ttlStore   ports.TTLStore
	notifier   ports.Notifier
	clock      ports.Clock
}

// NewVerifyDeliveryCodeCommandHandler creates a handler verifying customer
// delivery codes.
func NewVerifyDeliveryCodeCommandHandler(
	uowFactory UoWFactory,
	ttlStore ports.TTLStore,
	notifier ports.Notifier,
	clock ports.Clock,
) VerifyDeliveryCodeCommandHandler {
	return VerifyDeliveryCodeCommandHandler{
		uowFactory: uowFactory,
		ttlStore:   ttlStore,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle verifies the submitted code and completes the delivery.
// Fails with ErrCodeExpiredOrMissing or ErrInvalidCode; replay of an
// already-consumed code fails with ErrCodeExpiredOrMissing.
func (h VerifyDeliveryCodeCommandHandler) Handle(ctx context.Context, command VerifyDeliveryCodeCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	key := customerDeliveryKey(command.OrderID())

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
	agentRepo := uow.AgentRepository()

	ord, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	current, err := assignmentRepo.GetActiveByOrderForUpdate(ctx, ord.ID())
	if err != nil {
		return err
	}

	ag, err := agentRepo.GetForUpdate(ctx, current.AgentID())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	oldStatus := ord.Status()

	event, err := ord.Transition(order.Delivered, current.AgentID(), "delivery confirmed by customer code", now)
	if err != nil {
		return err
	}

	if err = current.MarkDelivered(now); err != nil {
		return err
	}

	proof, err := assignment.NewProofOfDelivery(
		current.ID(),
		command.DeliveryMethod(),
		command.Recipient(),
		command.PhotoRef(),
		command.SignatureRef(),
		command.Location(),
		command.Notes(),
		now,
	)
	if err != nil {
		return err
	}

	if err = ag.ReleaseAssignment(); err != nil {
		return err
	}
	if err = ag.RecordDelivery(true); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}
	if err = orderRepo.AddStatusEvent(ctx, event); err != nil {
		return err
	}
	if err = assignmentRepo.Update(ctx, current); err != nil {
		return err
	}
	if err = assignmentRepo.AddProofOfDelivery(ctx, proof); err != nil {
		return err
	}
	if err = agentRepo.Update(ctx, ag); err != nil {
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
