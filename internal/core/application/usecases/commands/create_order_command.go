package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a checkout request to register a new order.
// The order starts in Placed status with an auto-generated order number.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    kernel.UUID
	storeID       kernel.UUID
	paymentMethod order.PaymentMethod

	subtotal       decimal.Decimal
	deliveryFee    decimal.Decimal
	taxAmount      decimal.Decimal
	discountAmount decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Monetary validation (non-negative amounts, discount not exceeding the
// order value) is enforced by the Order aggregate on Handle.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	paymentMethod order.PaymentMethod,
	subtotal decimal.Decimal,
	deliveryFee decimal.Decimal,
	taxAmount decimal.Decimal,
	discountAmount decimal.Decimal,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		subtotal:       subtotal,
		deliveryFee:    deliveryFee,
		taxAmount:      taxAmount,
		discountAmount: discountAmount,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setStoreID(storeID),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CustomerID returns the purchasing customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// StoreID returns the merchant store the order belongs to.
func (c CreateOrderCommand) StoreID() kernel.UUID { return c.storeID }

// PaymentMethod returns how the order settles.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

// Subtotal returns the pre-fee item total.
func (c CreateOrderCommand) Subtotal() decimal.Decimal { return c.subtotal }

// DeliveryFee returns the delivery fee to charge.
func (c CreateOrderCommand) DeliveryFee() decimal.Decimal { return c.deliveryFee }

// TaxAmount returns the tax to charge.
func (c CreateOrderCommand) TaxAmount() decimal.Decimal { return c.taxAmount }

// DiscountAmount returns the discount to apply.
func (c CreateOrderCommand) DiscountAmount() decimal.Decimal { return c.discountAmount }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}
