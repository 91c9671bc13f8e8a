package order

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder constructors.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidTransition is returned when the requested status is not in
	// the allow-list for the order's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPaymentRequired is returned when a payment-gated transition is
	// attempted on an unpaid prepaid order.
	ErrPaymentRequired = errors.New("payment required")

	// ErrHandoverCodeAlreadySet is returned when a merchant handover code was
	// already recorded for the order. Codes are generated at most once.
	ErrHandoverCodeAlreadySet = errors.New("handover code already generated for this order")

	// ErrDeliveryCodeAlreadySet is returned when a customer delivery code was
	// already recorded for the order.
	ErrDeliveryCodeAlreadySet = errors.New("delivery code already generated for this order")
)

const orderNumberDigits = 8

// Order represents one customer purchase scoped to one merchant store. It is
// the aggregate root for the fulfillment workflow: every status mutation goes
// through Transition, which enforces the allow-list and payment gating and
// produces the matching StatusEvent.
//
// Invariants:
//   - status only holds values reachable through the transition table
//   - handover/delivery codes are recorded at most once and never reused
//   - payment-gated transitions cannot fire while an unpaid prepaid order
//
// Orders are never deleted; they end in Delivered, Cancelled or Refunded.
type Order struct {
	id          kernel.UUID
	orderNumber string
	customerID  kernel.UUID
	storeID     kernel.UUID

	status        Status
	paymentStatus PaymentStatus
	paymentMethod PaymentMethod

	subtotal       decimal.Decimal
	deliveryFee    decimal.Decimal
	taxAmount      decimal.Decimal
	discountAmount decimal.Decimal
	totalAmount    decimal.Decimal

	// handoverCode/deliveryCode record the one-time codes issued for this
	// order. The live copies with TTLs belong to the code store; these
	// fields only enforce the generated-at-most-once invariant.
	handoverCode *string
	deliveryCode *string

	handedToCourierAt *time.Time
	deliveredAt       *time.Time

	guard guard.ConstructorGuard
}

// GenerateOrderNumber produces an externally shareable order number, distinct
// from the internal id. Uniqueness is enforced by the orders table.
func GenerateOrderNumber() string {
	digits := make([]byte, orderNumberDigits)
	for i := range digits {
		digits[i] = byte('0' + rand.IntN(10)) //nolint:gosec // not a credential
	}
	return "ORD" + string(digits)
}

// NewOrder creates an order at checkout in Placed status with no payment
// recorded. The total is computed as subtotal + deliveryFee + tax - discount.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	storeID kernel.UUID,
	paymentMethod PaymentMethod,
	subtotal decimal.Decimal,
	deliveryFee decimal.Decimal,
	taxAmount decimal.Decimal,
	discountAmount decimal.Decimal,
) (*Order, error) {
	o := &Order{
		status:        Placed,
		paymentStatus: PaymentUnpaid,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerID(customerID),
		o.setStoreID(storeID),
		o.setPaymentMethod(paymentMethod),
		o.setAmounts(subtotal, deliveryFee, taxAmount, discountAmount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// preserving its full state at the time of persistence.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	storeID kernel.UUID,
	status Status,
	paymentStatus PaymentStatus,
	paymentMethod PaymentMethod,
	subtotal decimal.Decimal,
	deliveryFee decimal.Decimal,
	taxAmount decimal.Decimal,
	discountAmount decimal.Decimal,
	handoverCode *string,
	deliveryCode *string,
	handedToCourierAt *time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerID(customerID),
		o.setStoreID(storeID),
		status.Validate(),
		paymentStatus.Validate(),
		o.setPaymentMethod(paymentMethod),
		o.setAmounts(subtotal, deliveryFee, taxAmount, discountAmount),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.paymentStatus = paymentStatus
	o.handoverCode = handoverCode
	o.deliveryCode = deliveryCode
	o.handedToCourierAt = handedToCourierAt
	o.deliveredAt = deliveredAt

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's internal identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the externally shareable order number.
func (o *Order) OrderNumber() string { return o.orderNumber }

// CustomerID returns the purchasing customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// StoreID returns the merchant store the order belongs to.
func (o *Order) StoreID() kernel.UUID { return o.storeID }

// Status returns the current workflow status.
func (o *Order) Status() Status { return o.status }

// PaymentStatus returns the current settlement state.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// PaymentMethod returns how the order settles.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// Subtotal returns the pre-fee item total.
func (o *Order) Subtotal() decimal.Decimal { return o.subtotal }

// DeliveryFee returns the delivery fee charged on the order.
func (o *Order) DeliveryFee() decimal.Decimal { return o.deliveryFee }

// TaxAmount returns the tax charged on the order.
func (o *Order) TaxAmount() decimal.Decimal { return o.taxAmount }

// DiscountAmount returns the discount applied to the order.
func (o *Order) DiscountAmount() decimal.Decimal { return o.discountAmount }

// TotalAmount returns the amount the customer pays.
func (o *Order) TotalAmount() decimal.Decimal { return o.totalAmount }

// HandoverCode returns the recorded merchant handover code, nil if none was issued.
func (o *Order) HandoverCode() *string { return o.handoverCode }

// DeliveryCode returns the recorded customer delivery code, nil if none was issued.
func (o *Order) DeliveryCode() *string { return o.deliveryCode }

// HandedToCourierAt returns when custody passed to the courier, nil before pickup.
func (o *Order) HandedToCourierAt() *time.Time { return o.handedToCourierAt }

// DeliveredAt returns when the order reached the customer, nil before delivery.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// Transition moves the order to target and returns the StatusEvent recording
// the change. The order is left untouched on any error.
//
// Fails with:
//   - ErrInvalidTransition if target is not in the allow-list for the current
//     status, or equals it
//   - ErrPaymentRequired if target is payment-gated, the order is prepaid and
//     its payment status is not paid
//
// Side effects on success: HandedToCourier stamps the handover timestamp,
// Delivered stamps the delivery timestamp, Refunded flips the payment status
// to refunded.
func (o *Order) Transition(target Status, actorID kernel.UUID, note string, now time.Time) (*StatusEvent, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	if !o.status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s cannot move to %s", ErrInvalidTransition, o.status, target)
	}

	if target.IsPaymentGated() && o.paymentMethod.IsPrepaid() && o.paymentStatus != PaymentPaid {
		return nil, fmt.Errorf("%w: order %s must be paid before moving to %s",
			ErrPaymentRequired, o.orderNumber, target)
	}

	event, err := NewStatusEvent(o.id, o.status, target, actorID, note, now)
	if err != nil {
		return nil, err
	}

	o.status = target

	switch target {
	case HandedToCourier:
		ts := now
		o.handedToCourierAt = &ts
	case Delivered:
		ts := now
		o.deliveredAt = &ts
	case Refunded:
		o.paymentStatus = PaymentRefunded
	}

	return event, nil
}

// MarkPaid records a settled payment reported by the payment provider.
func (o *Order) MarkPaid() error {
	if err := o.Validate(); err != nil {
		return err
	}
	o.paymentStatus = PaymentPaid
	return nil
}

// MarkPaymentFailed records a failed payment attempt.
func (o *Order) MarkPaymentFailed() error {
	if err := o.Validate(); err != nil {
		return err
	}
	o.paymentStatus = PaymentFailed
	return nil
}

// RecordHandoverCode stores the one-time merchant handover code issued for
// this order. A code can be recorded only once per order.
func (o *Order) RecordHandoverCode(code string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.handoverCode != nil {
		return ErrHandoverCodeAlreadySet
	}
	o.handoverCode = &code
	return nil
}

// RecordDeliveryCode stores the one-time customer delivery code issued for
// this order. A code can be recorded only once per order.
func (o *Order) RecordDeliveryCode(code string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.deliveryCode != nil {
		return ErrDeliveryCodeAlreadySet
	}
	o.deliveryCode = &code
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("customer id: %w", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("store id: %w", err)
	}
	o.storeID = id
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setAmounts(subtotal, deliveryFee, taxAmount, discountAmount decimal.Decimal) error {
	for _, amount := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"subtotal", subtotal},
		{"delivery fee", deliveryFee},
		{"tax amount", taxAmount},
		{"discount amount", discountAmount},
	} {
		if amount.value.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(amount.name,
				fmt.Errorf("%s is negative", amount.value))
		}
	}

	total := subtotal.Add(deliveryFee).Add(taxAmount).Sub(discountAmount)
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total amount",
			fmt.Errorf("discount %s exceeds order value", discountAmount))
	}

	o.subtotal = subtotal
	o.deliveryFee = deliveryFee
	o.taxAmount = taxAmount
	o.discountAmount = discountAmount
	o.totalAmount = total
	return nil
}
