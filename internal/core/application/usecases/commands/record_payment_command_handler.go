package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// RecordPaymentCommandHandler applies payment outcomes to orders.
//
// A successful payment against an order that is still Placed confirms it in
// the same transaction, so prepaid orders do not sit waiting for a separate
// confirmation call.
type RecordPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
}

// NewRecordPaymentCommandHandler creates a handler for payment outcomes.
func NewRecordPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle marks the order paid or failed under its row lock.
func (h RecordPaymentCommandHandler) Handle(ctx context.Context, command RecordPaymentCommand) error {
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

	if command.Succeeded() {
		err = ord.MarkPaid()
	} else {
		err = ord.MarkPaymentFailed()
	}
	if err != nil {
		return err
	}

	var event *order.StatusEvent
	oldStatus := ord.Status()
	if command.Succeeded() && ord.Status() == order.Placed {
		event, err = ord.Transition(
			order.Confirmed, ord.CustomerID(), "auto-confirmed after payment completion", h.clock.Now(),
		)
		if err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if event != nil {
		if err = orderRepo.AddStatusEvent(ctx, event); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if event != nil {
		h.notifier.Publish(ctx, ports.EventStatusChanged, map[string]any{
			"order_id":     ord.ID().String(),
			"order_number": ord.OrderNumber(),
			"old_status":   oldStatus.String(),
			"new_status":   ord.Status().String(),
		})
	}

	return nil
}
