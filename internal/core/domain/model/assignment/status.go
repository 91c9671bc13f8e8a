package assignment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an assignment. The machine only
// moves forward; Delivered, Cancelled and Failed are terminal.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota

	// Assigned means the engine picked an agent; the agent has not reacted yet.
	// Assignments left in this state past the acceptance window are swept
	// into reassignment.
	Assigned

	// Accepted means the agent confirmed they will handle the delivery.
	Accepted

	// PickedUp means the merchant handover code was verified and the agent
	// has the package.
	PickedUp

	// InTransit means the agent reported being en route to the customer.
	InTransit

	// Delivered means the customer delivery code was verified.
	Delivered

	// Cancelled is terminal; set on reassignment or order cancellation.
	Cancelled

	// Failed is terminal; set when the delivery could not be completed.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Assigned:      "assigned",
		Accepted:      "accepted",
		PickedUp:      "picked_up",
		InTransit:     "in_transit",
		Delivered:     "delivered",
		Cancelled:     "cancelled",
		Failed:        "failed",
	}
}

// The agent may skip Accepted and go straight to pickup when the handover
// code is verified before they tapped accept.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Assigned:  {Accepted, PickedUp, Cancelled, Failed},
		Accepted:  {PickedUp, Cancelled, Failed},
		PickedUp:  {InTransit, Delivered, Cancelled, Failed},
		InTransit: {Delivered, Cancelled, Failed},
		Delivered: {},
		Cancelled: {},
		Failed:    {},
	}
}

// AllStatuses returns every valid status in workflow order.
func AllStatuses() []Status {
	return []Status{Assigned, Accepted, PickedUp, InTransit, Delivered, Cancelled, Failed}
}

// StatusFromString parses the persisted string representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid assignment status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid assignment status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether the transition s → target is allowed.
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

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(transitionTable()[s]) == 0
}
