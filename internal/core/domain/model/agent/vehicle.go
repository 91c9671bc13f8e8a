package agent

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// VehicleType represents what the agent delivers with. It is informational
// for dispatch staff and route estimation; selection does not depend on it.
type VehicleType int

const (
	// VehicleTypeUnknown catches uninitialized values.
	VehicleTypeUnknown VehicleType = iota

	// Bicycle is a pedal bicycle.
	Bicycle

	// Scooter is the registration default.
	Scooter

	// Motorcycle is a motorized two-wheeler.
	Motorcycle

	// Car is a passenger car.
	Car

	// Van is a delivery van for bulky orders.
	Van
)

func getVehicleTypeStrings() map[VehicleType]string {
	return map[VehicleType]string{
		VehicleTypeUnknown: "unknown",
		Bicycle:            "bicycle",
		Scooter:            "scooter",
		Motorcycle:         "motorcycle",
		Car:                "car",
		Van:                "van",
	}
}

// VehicleTypeFromString parses the persisted representation of a vehicle type.
func VehicleTypeFromString(s string) (VehicleType, error) {
	for vt, str := range getVehicleTypeStrings() {
		if str == s && vt != VehicleTypeUnknown {
			return vt, nil
		}
	}
	return VehicleTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"vehicle type", fmt.Errorf("%q is not a valid vehicle type", s))
}

// Validate checks if the VehicleType value is valid.
func (v VehicleType) Validate() error {
	if _, ok := getVehicleTypeStrings()[v]; !ok || v == VehicleTypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle type", fmt.Errorf("%d is not a valid vehicle type", v))
	}
	return nil
}

// String returns the persisted name of the vehicle type.
func (v VehicleType) String() string {
	if str, ok := getVehicleTypeStrings()[v]; ok {
		return str
	}
	return "unknown"
}
