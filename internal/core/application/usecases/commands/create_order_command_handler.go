package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler registers new orders at checkout.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the order in Placed status with a fresh order number and
// persists it.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		command.OrderID(),
		order.GenerateOrderNumber(),
		command.CustomerID(),
		command.StoreID(),
		command.PaymentMethod(),
		command.Subtotal(),
		command.DeliveryFee(),
		command.TaxAmount(),
		command.DiscountAmount(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
