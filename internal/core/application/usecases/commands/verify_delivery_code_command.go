package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrVerifyDeliveryCodeCommandIsNotConstructed = errors.New(
	"VerifyDeliveryCodeCommand must be created via NewVerifyDeliveryCodeCommand constructor",
)

// VerifyDeliveryCodeCommand verifies the customer delivery code submitted by
// the courier at the door and carries the proof-of-delivery details captured
// on the spot.
type VerifyDeliveryCodeCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	submittedCode string

	deliveryMethod assignment.DeliveryMethod
	recipient      string
	photoRef       string
	signatureRef   string
	location       *kernel.GeoPoint
	notes          string

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryCodeCommand creates a command to verify a customer
// delivery code. The submission is case-normalized the same way as the
// merchant code. Recipient, media references, location and notes are
// optional proof fields.
func NewVerifyDeliveryCodeCommand(
	orderID kernel.UUID,
	submittedCode string,
	deliveryMethod assignment.DeliveryMethod,
	recipient string,
	photoRef string,
	signatureRef string,
	location *kernel.GeoPoint,
	notes string,
) (VerifyDeliveryCodeCommand, error) {
	if err := errors.Join(orderID.Validate(), deliveryMethod.Validate()); err != nil {
		return VerifyDeliveryCodeCommand{}, err
	}
	submittedCode = strings.ToUpper(strings.TrimSpace(submittedCode))
	if submittedCode == "" {
		return VerifyDeliveryCodeCommand{}, errs.NewValueIsRequiredError("submitted code")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return VerifyDeliveryCodeCommand{}, err
		}
	}

	return VerifyDeliveryCodeCommand{
		orderID:        orderID,
		submittedCode:  submittedCode,
		deliveryMethod: deliveryMethod,
		recipient:      recipient,
		photoRef:       photoRef,
		signatureRef:   signatureRef,
		location:       location,
		notes:          notes,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyDeliveryCodeCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryCodeCommandIsNotConstructed)
}

// OrderID returns the order being delivered.
func (c VerifyDeliveryCodeCommand) OrderID() kernel.UUID { return c.orderID }

// SubmittedCode returns the code the courier typed in.
func (c VerifyDeliveryCodeCommand) SubmittedCode() string { return c.submittedCode }

// DeliveryMethod returns how the package was handed over.
func (c VerifyDeliveryCodeCommand) DeliveryMethod() assignment.DeliveryMethod {
	return c.deliveryMethod
}

// Recipient returns who received the package.
func (c VerifyDeliveryCodeCommand) Recipient() string { return c.recipient }

// PhotoRef returns the storage reference of the delivery photo.
func (c VerifyDeliveryCodeCommand) PhotoRef() string { return c.photoRef }

// SignatureRef returns the storage reference of the signature image.
func (c VerifyDeliveryCodeCommand) SignatureRef() string { return c.signatureRef }

// Location returns where the delivery was confirmed.
func (c VerifyDeliveryCodeCommand) Location() *kernel.GeoPoint { return c.location }

// Notes returns free-text remarks from the courier.
func (c VerifyDeliveryCodeCommand) Notes() string { return c.notes }
