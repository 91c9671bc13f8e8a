package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentStatus represents the settlement state of an order.
type PaymentStatus int

const (
	// PaymentStatusUnknown catches uninitialized values.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentUnpaid means no successful payment has been recorded.
	PaymentUnpaid

	// PaymentPaid means the payment provider reported a settled payment.
	PaymentPaid

	// PaymentFailed means the last payment attempt failed.
	PaymentFailed

	// PaymentRefunded means a settled payment was returned to the customer.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "unknown",
		PaymentUnpaid:        "unpaid",
		PaymentPaid:          "paid",
		PaymentFailed:        "failed",
		PaymentRefunded:      "refunded",
	}
}

// PaymentStatusFromString parses the persisted representation of a payment status.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != PaymentStatusUnknown {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status", fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok || s == PaymentStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the persisted name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// PaymentMethod represents how an order is settled.
type PaymentMethod int

const (
	// PaymentMethodUnknown catches uninitialized values.
	PaymentMethodUnknown PaymentMethod = iota

	// CashOnDelivery settles at the door. Orders using it are exempt from
	// the payment gate on status transitions.
	CashOnDelivery

	// UPI is a prepaid bank-transfer settlement.
	UPI

	// Card is a prepaid card settlement.
	Card

	// Wallet is a prepaid digital-wallet settlement.
	Wallet
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "unknown",
		CashOnDelivery:       "cod",
		UPI:                  "upi",
		Card:                 "card",
		Wallet:               "wallet",
	}
}

// PaymentMethodFromString parses the persisted representation of a payment method.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s && method != PaymentMethodUnknown {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment method", fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok || m == PaymentMethodUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the persisted name of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// IsPrepaid reports whether the method requires settlement before
// fulfillment. Only CashOnDelivery settles at the door.
func (m PaymentMethod) IsPrepaid() bool {
	return m != CashOnDelivery && m != PaymentMethodUnknown
}
