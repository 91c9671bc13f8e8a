package agent

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for delivery agent operations.
var (
	// ErrNameIsRequired is returned when attempting to create an agent without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrPhoneIsRequired is returned when attempting to create an agent without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")

	// ErrAgentIsNotConstructed is returned when using an improperly initialized DeliveryAgent.
	ErrAgentIsNotConstructed = errors.New("DeliveryAgent must be created via NewDeliveryAgent constructor")

	// ErrAgentAtCapacity is returned when taking an assignment would push the
	// in-flight counter past the agent's concurrency limit.
	ErrAgentAtCapacity = errors.New("agent has reached its concurrent assignment limit")

	// ErrNoAssignmentsInFlight is returned when releasing an assignment while
	// the in-flight counter is already zero.
	ErrNoAssignmentsInFlight = errors.New("agent has no assignments in flight")
)

// defaultMaxConcurrent is applied when registration does not specify a limit.
const defaultMaxConcurrent = 3

// DeliveryAgent represents a courier registered with one merchant store.
// It is an aggregate root that owns the in-flight assignment counter and the
// lifetime delivery statistics.
//
// Business rules:
//   - currentAssignments never exceeds maxConcurrent; TakeAssignment enforces
//     the invariant and the counter is persisted in the same unit of work as
//     the assignment write
//   - IsEligible requires availability, Active status and spare capacity
//   - lifetime counters are monotonic
type DeliveryAgent struct {
	id      kernel.UUID
	storeID kernel.UUID
	name    string
	phone   string

	vehicleType       VehicleType
	operationalStatus OperationalStatus
	isAvailable       bool

	maxConcurrent      int
	currentAssignments int

	totalDeliveries      int
	successfulDeliveries int

	lastKnownLocation *kernel.GeoPoint
	lastLocationAt    *time.Time

	guard guard.ConstructorGuard
}

// NewDeliveryAgent registers a new agent for a store. Agents start Inactive
// and unavailable; they opt in via SetAvailability and SetOperationalStatus
// when the shift starts. A non-positive maxConcurrent falls back to the
// default limit of 3.
func NewDeliveryAgent(
	id kernel.UUID,
	storeID kernel.UUID,
	name string,
	phone string,
	vehicleType VehicleType,
	maxConcurrent int,
) (*DeliveryAgent, error) {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	a := &DeliveryAgent{
		operationalStatus: Inactive,
		isAvailable:       false,
		maxConcurrent:     maxConcurrent,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setStoreID(storeID),
		a.setName(name),
		a.setPhone(phone),
		a.setVehicleType(vehicleType),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreDeliveryAgent reconstructs a DeliveryAgent from persistent storage.
func RestoreDeliveryAgent(
	id kernel.UUID,
	storeID kernel.UUID,
	name string,
	phone string,
	vehicleType VehicleType,
	operationalStatus OperationalStatus,
	isAvailable bool,
	maxConcurrent int,
	currentAssignments int,
	totalDeliveries int,
	successfulDeliveries int,
	lastKnownLocation *kernel.GeoPoint,
	lastLocationAt *time.Time,
) (*DeliveryAgent, error) {
	a := &DeliveryAgent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setStoreID(storeID),
		a.setName(name),
		a.setPhone(phone),
		a.setVehicleType(vehicleType),
		operationalStatus.Validate(),
		a.setCounters(maxConcurrent, currentAssignments, totalDeliveries, successfulDeliveries),
	); err != nil {
		return nil, err
	}

	a.operationalStatus = operationalStatus
	a.isAvailable = isAvailable
	a.lastKnownLocation = lastKnownLocation
	a.lastLocationAt = lastLocationAt

	return a, nil
}

// Validate ensures the agent was created through a constructor.
func (a *DeliveryAgent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// IsEqual compares two agents by their unique identifiers.
func (a *DeliveryAgent) IsEqual(other *DeliveryAgent) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the agent's unique identifier.
func (a *DeliveryAgent) ID() kernel.UUID { return a.id }

// StoreID returns the merchant store the agent belongs to.
func (a *DeliveryAgent) StoreID() kernel.UUID { return a.storeID }

// Name returns the agent's display name.
func (a *DeliveryAgent) Name() string { return a.name }

// Phone returns the agent's contact phone number.
func (a *DeliveryAgent) Phone() string { return a.phone }

// VehicleType returns what the agent delivers with.
func (a *DeliveryAgent) VehicleType() VehicleType { return a.vehicleType }

// OperationalStatus returns the agent's working state.
func (a *DeliveryAgent) OperationalStatus() OperationalStatus { return a.operationalStatus }

// IsAvailable returns the agent's self-reported availability flag.
func (a *DeliveryAgent) IsAvailable() bool { return a.isAvailable }

// MaxConcurrent returns the agent's concurrency limit.
func (a *DeliveryAgent) MaxConcurrent() int { return a.maxConcurrent }

// CurrentAssignments returns the number of assignments in flight.
func (a *DeliveryAgent) CurrentAssignments() int { return a.currentAssignments }

// TotalDeliveries returns the lifetime count of completed assignments.
func (a *DeliveryAgent) TotalDeliveries() int { return a.totalDeliveries }

// SuccessfulDeliveries returns the lifetime count of successful deliveries.
func (a *DeliveryAgent) SuccessfulDeliveries() int { return a.successfulDeliveries }

// LastKnownLocation returns the agent's most recent reported position, nil if
// the agent never reported one.
func (a *DeliveryAgent) LastKnownLocation() *kernel.GeoPoint { return a.lastKnownLocation }

// LastLocationAt returns when the agent last reported a position.
func (a *DeliveryAgent) LastLocationAt() *time.Time { return a.lastLocationAt }

// SuccessRate returns the percentage of lifetime deliveries that succeeded,
// rounded to two decimals. Zero deliveries yields zero.
func (a *DeliveryAgent) SuccessRate() float64 {
	if a.totalDeliveries == 0 {
		return 0
	}
	rate := float64(a.successfulDeliveries) / float64(a.totalDeliveries) * 100
	return float64(int(rate*100+0.5)) / 100
}

// IsEligible reports whether the agent can be handed a new assignment:
// available, operationally active and under capacity.
func (a *DeliveryAgent) IsEligible() bool {
	return a.isAvailable &&
		a.operationalStatus == Active &&
		a.currentAssignments < a.maxConcurrent
}

// TakeAssignment increments the in-flight counter. Fails with
// ErrAgentAtCapacity when the agent is already at its limit; the counter is
// never pushed past it.
func (a *DeliveryAgent) TakeAssignment() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.currentAssignments >= a.maxConcurrent {
		return ErrAgentAtCapacity
	}
	a.currentAssignments++
	return nil
}

// ReleaseAssignment decrements the in-flight counter when an assignment
// terminates. Fails with ErrNoAssignmentsInFlight if the counter is zero.
func (a *DeliveryAgent) ReleaseAssignment() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.currentAssignments == 0 {
		return ErrNoAssignmentsInFlight
	}
	a.currentAssignments--
	return nil
}

// RecordDelivery updates the lifetime statistics after an assignment reaches
// a terminal state. Successful deliveries count toward both totals.
func (a *DeliveryAgent) RecordDelivery(successful bool) error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.totalDeliveries++
	if successful {
		a.successfulDeliveries++
	}
	return nil
}

// SetAvailability toggles the availability flag.
func (a *DeliveryAgent) SetAvailability(available bool) error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.isAvailable = available
	return nil
}

// SetOperationalStatus moves the agent to the given working state.
func (a *DeliveryAgent) SetOperationalStatus(status OperationalStatus) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}
	a.operationalStatus = status
	return nil
}

// UpdateLocation records the agent's latest reported position.
func (a *DeliveryAgent) UpdateLocation(point kernel.GeoPoint, at time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := point.Validate(); err != nil {
		return err
	}
	a.lastKnownLocation = &point
	a.lastLocationAt = &at
	return nil
}

func (a *DeliveryAgent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *DeliveryAgent) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("store id", err)
	}
	a.storeID = id
	return nil
}

func (a *DeliveryAgent) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

func (a *DeliveryAgent) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	a.phone = phone
	return nil
}

func (a *DeliveryAgent) setVehicleType(vt VehicleType) error {
	if err := vt.Validate(); err != nil {
		return err
	}
	a.vehicleType = vt
	return nil
}

func (a *DeliveryAgent) setCounters(maxConcurrent, current, total, successful int) error {
	if maxConcurrent <= 0 {
		return errs.NewValueIsRequiredError("max concurrent assignments")
	}
	if current < 0 || current > maxConcurrent {
		return errs.NewValueIsOutOfRangeError("current assignments", current, 0, maxConcurrent)
	}
	if total < 0 || successful < 0 || successful > total {
		return errs.NewValueIsOutOfRangeError("successful deliveries", successful, 0, total)
	}

	a.maxConcurrent = maxConcurrent
	a.currentAssignments = current
	a.totalDeliveries = total
	a.successfulDeliveries = successful
	return nil
}
