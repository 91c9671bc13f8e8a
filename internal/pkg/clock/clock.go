// Package clock provides the production implementation of the Clock port.
package clock

import "time"

// System reads the wall clock.
type System struct{}

// NewSystem creates a wall clock.
func NewSystem() System {
	return System{}
}

// Now returns the current time in UTC.
func (System) Now() time.Time {
	return time.Now().UTC()
}
