package assignment

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrProofOfDeliveryIsNotConstructed is returned when a ProofOfDelivery was
// not created through the NewProofOfDelivery constructor.
var ErrProofOfDeliveryIsNotConstructed = errors.New("ProofOfDelivery must be created via NewProofOfDelivery constructor")

// DeliveryMethod describes how the package was handed over at the door.
type DeliveryMethod int

const (
	// DeliveryMethodUnknown catches uninitialized values.
	DeliveryMethodUnknown DeliveryMethod = iota

	// HandedToCustomer is the default: the customer took the package in person.
	HandedToCustomer

	// LeftAtDoor means the package was left at the customer's door.
	LeftAtDoor

	// LeftWithSecurity means the package was left with building security.
	LeftWithSecurity

	// LeftWithNeighbor means the package was left with a neighbor.
	LeftWithNeighbor
)

func getDeliveryMethodStrings() map[DeliveryMethod]string {
	return map[DeliveryMethod]string{
		DeliveryMethodUnknown: "unknown",
		HandedToCustomer:      "handed_to_customer",
		LeftAtDoor:            "left_at_door",
		LeftWithSecurity:      "left_with_security",
		LeftWithNeighbor:      "left_with_neighbor",
	}
}

// DeliveryMethodFromString parses the persisted representation of a method.
func DeliveryMethodFromString(s string) (DeliveryMethod, error) {
	for m, str := range getDeliveryMethodStrings() {
		if str == s && m != DeliveryMethodUnknown {
			return m, nil
		}
	}
	return DeliveryMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery method", fmt.Errorf("%q is not a valid delivery method", s))
}

// Validate checks if the DeliveryMethod value is valid.
func (m DeliveryMethod) Validate() error {
	if _, ok := getDeliveryMethodStrings()[m]; !ok || m == DeliveryMethodUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery method", fmt.Errorf("%d is not a valid delivery method", m))
	}
	return nil
}

// String returns the persisted name of the method.
func (m DeliveryMethod) String() string {
	if str, ok := getDeliveryMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// ProofOfDelivery documents a completed delivery. One record per assignment,
// written when the customer delivery code is verified. Photo and signature
// are opaque storage references; this core never processes media.
type ProofOfDelivery struct {
	id           kernel.UUID
	assignmentID kernel.UUID
	method       DeliveryMethod
	recipient    string
	photoRef     string
	signatureRef string
	location     *kernel.GeoPoint
	notes        string
	recordedAt   time.Time
	guard        guard.ConstructorGuard
}

// NewProofOfDelivery creates the proof record for a verified delivery.
// Recipient, media references, location and notes are all optional.
func NewProofOfDelivery(
	assignmentID kernel.UUID,
	method DeliveryMethod,
	recipient string,
	photoRef string,
	signatureRef string,
	location *kernel.GeoPoint,
	notes string,
	recordedAt time.Time,
) (*ProofOfDelivery, error) {
	if err := assignmentID.Validate(); err != nil {
		return nil, err
	}
	if err := method.Validate(); err != nil {
		return nil, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}

	return &ProofOfDelivery{
		id:           kernel.NewUUID(),
		assignmentID: assignmentID,
		method:       method,
		recipient:    recipient,
		photoRef:     photoRef,
		signatureRef: signatureRef,
		location:     location,
		notes:        notes,
		recordedAt:   recordedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreProofOfDelivery reconstructs a ProofOfDelivery from persistence.
func RestoreProofOfDelivery(
	id kernel.UUID,
	assignmentID kernel.UUID,
	method DeliveryMethod,
	recipient string,
	photoRef string,
	signatureRef string,
	location *kernel.GeoPoint,
	notes string,
	recordedAt time.Time,
) (*ProofOfDelivery, error) {
	if err := errors.Join(id.Validate(), assignmentID.Validate(), method.Validate()); err != nil {
		return nil, err
	}

	return &ProofOfDelivery{
		id:           id,
		assignmentID: assignmentID,
		method:       method,
		recipient:    recipient,
		photoRef:     photoRef,
		signatureRef: signatureRef,
		location:     location,
		notes:        notes,
		recordedAt:   recordedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the record was created through a constructor.
func (p *ProofOfDelivery) Validate() error {
	if p == nil {
		return ErrProofOfDeliveryIsNotConstructed
	}
	return p.guard.Validate(ErrProofOfDeliveryIsNotConstructed)
}

// ID returns the record's unique identifier.
func (p *ProofOfDelivery) ID() kernel.UUID { return p.id }

// AssignmentID returns the assignment the proof belongs to.
func (p *ProofOfDelivery) AssignmentID() kernel.UUID { return p.assignmentID }

// Method returns how the package was handed over.
func (p *ProofOfDelivery) Method() DeliveryMethod { return p.method }

// Recipient returns who received the package, empty if not captured.
func (p *ProofOfDelivery) Recipient() string { return p.recipient }

// PhotoRef returns the storage reference of the delivery photo.
func (p *ProofOfDelivery) PhotoRef() string { return p.photoRef }

// SignatureRef returns the storage reference of the signature image.
func (p *ProofOfDelivery) SignatureRef() string { return p.signatureRef }

// Location returns where the delivery was confirmed, nil if not captured.
func (p *ProofOfDelivery) Location() *kernel.GeoPoint { return p.location }

// Notes returns free-text remarks from the courier.
func (p *ProofOfDelivery) Notes() string { return p.notes }

// RecordedAt returns when the proof was written.
func (p *ProofOfDelivery) RecordedAt() time.Time { return p.recordedAt }
