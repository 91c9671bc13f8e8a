package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with a fixed allow-list of transitions covering the full
// fulfillment workflow.
//
// State transitions:
//
//	Placed → Confirmed → Preparing → Packed → ReadyForPickup
//	      → HandedToCourier → OutForDelivery → Delivered → Refunded
//
// Cancelled is reachable from Placed, Confirmed, Preparing, Packed,
// ReadyForPickup and OutForDelivery. Cancelled and Refunded are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Placed is the initial status assigned at checkout.
	Placed

	// Confirmed means the merchant accepted the order. From here the order
	// is eligible for courier assignment.
	Confirmed

	// Preparing means the merchant is picking and preparing the items.
	Preparing

	// Packed means the items are packed and a merchant handover code can be issued.
	Packed

	// ReadyForPickup means the package is waiting for the courier at the store.
	ReadyForPickup

	// HandedToCourier means the merchant handover code was verified and the
	// courier has physical custody of the package.
	HandedToCourier

	// OutForDelivery means the courier is en route to the customer.
	OutForDelivery

	// Delivered means the customer delivery code was verified.
	Delivered

	// Cancelled is a terminal state reachable from every pre-pickup status.
	Cancelled

	// Refunded is a terminal state reachable only from Delivered.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		Placed:          "placed",
		Confirmed:       "confirmed",
		Preparing:       "preparing",
		Packed:          "packed",
		ReadyForPickup:  "ready_for_pickup",
		HandedToCourier: "handed_to_courier",
		OutForDelivery:  "out_for_delivery",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
		Refunded:        "refunded",
	}
}

// transitionTable is the fixed allow-list of status transitions.
// The workflow is not user-configurable.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Placed:          {Confirmed, Cancelled},
		Confirmed:       {Preparing, Cancelled},
		Preparing:       {Packed, Cancelled},
		Packed:          {ReadyForPickup, Cancelled},
		ReadyForPickup:  {HandedToCourier, Cancelled},
		HandedToCourier: {OutForDelivery},
		OutForDelivery:  {Delivered, Cancelled},
		Delivered:       {Refunded},
		Cancelled:       {},
		Refunded:        {},
	}
}

// AllStatuses returns every valid status in workflow order.
// Useful for exhaustive table checks and UI enumeration.
func AllStatuses() []Status {
	return []Status{
		Placed, Confirmed, Preparing, Packed, ReadyForPickup,
		HandedToCourier, OutForDelivery, Delivered, Cancelled, Refunded,
	}
}

// StatusFromString parses the persisted string representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the snake_case name of the status as persisted and exposed
// over the API. Implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether the transition s → target is in the
// allow-list. A transition to the current status is never allowed.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return false
	}
	for _, allowed := range transitionTable()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// NextPossible returns the allow-list of statuses reachable from s.
// Returned for UI and automation use; empty for terminal statuses.
func (s Status) NextPossible() []Status {
	allowed := transitionTable()[s]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(transitionTable()[s]) == 0
}

// IsPaymentGated reports whether entering s requires the order's payment to
// be settled (unless the order is pay-on-delivery). Everything from
// Confirmed through Delivered is gated.
func (s Status) IsPaymentGated() bool {
	switch s {
	case Confirmed, Preparing, Packed, ReadyForPickup, HandedToCourier, OutForDelivery, Delivered:
		return true
	default:
		return false
	}
}
