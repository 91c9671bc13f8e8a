package agent

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// OperationalStatus represents the agent's working state as reported by the
// agent or set by the system. It is independent of the availability flag:
// only the combination of Active status, availability and spare capacity
// makes an agent eligible for selection.
type OperationalStatus int

const (
	// OperationalStatusUnknown catches uninitialized values.
	OperationalStatusUnknown OperationalStatus = iota

	// Active means the agent is on shift and accepting work.
	Active

	// Inactive is the registration default before the agent starts a shift.
	Inactive

	// OnBreak means the agent paused work temporarily.
	OnBreak

	// Busy means the agent reached capacity and is set aside by the system.
	Busy

	// Offline means the agent ended the shift.
	Offline
)

func getOperationalStatusStrings() map[OperationalStatus]string {
	return map[OperationalStatus]string{
		OperationalStatusUnknown: "unknown",
		Active:                   "active",
		Inactive:                 "inactive",
		OnBreak:                  "on_break",
		Busy:                     "busy",
		Offline:                  "offline",
	}
}

// OperationalStatusFromString parses the persisted representation of a status.
func OperationalStatusFromString(s string) (OperationalStatus, error) {
	for status, str := range getOperationalStatusStrings() {
		if str == s && status != OperationalStatusUnknown {
			return status, nil
		}
	}
	return OperationalStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"operational status", fmt.Errorf("%q is not a valid operational status", s))
}

// Validate checks if the OperationalStatus value is valid.
func (s OperationalStatus) Validate() error {
	if _, ok := getOperationalStatusStrings()[s]; !ok || s == OperationalStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"operational status", fmt.Errorf("%d is not a valid operational status", s))
	}
	return nil
}

// String returns the persisted name of the status.
func (s OperationalStatus) String() string {
	if str, ok := getOperationalStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
