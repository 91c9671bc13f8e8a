package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrVerifyHandoverCodeCommandIsNotConstructed = errors.New(
		"VerifyHandoverCodeCommand must be created via NewVerifyHandoverCodeCommand constructor",
	)

	// ErrCodeExpiredOrMissing is returned when no live code exists for the
	// order and purpose. An expired code, a never-issued code and an
	// already-consumed code are indistinguishable by design.
	ErrCodeExpiredOrMissing = errors.New("code is expired or was never issued")

	// ErrInvalidCode is returned when the submitted value does not match
	// the live code. The code is not consumed on a mismatch.
	ErrInvalidCode = errors.New("submitted code does not match")
)

// VerifyHandoverCodeCommand verifies the merchant handover code submitted by
// the courier at the store counter. A match hands custody to the courier.
type VerifyHandoverCodeCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	submittedCode string

	guard guard.ConstructorGuard
}

// NewVerifyHandoverCodeCommand creates a command to verify a merchant
// handover code. The submission is case-normalized: codes are issued
// uppercase but read out over the phone and typed back in any case.
func NewVerifyHandoverCodeCommand(orderID kernel.UUID, submittedCode string) (VerifyHandoverCodeCommand, error) {
	if err := orderID.Validate(); err != nil {
		return VerifyHandoverCodeCommand{}, err
	}
	submittedCode = strings.ToUpper(strings.TrimSpace(submittedCode))
	if submittedCode == "" {
		return VerifyHandoverCodeCommand{}, errs.NewValueIsRequiredError("submitted code")
	}

	return VerifyHandoverCodeCommand{
		orderID:       orderID,
		submittedCode: submittedCode,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyHandoverCodeCommand) Validate() error {
	return c.guard.Validate(ErrVerifyHandoverCodeCommandIsNotConstructed)
}

// OrderID returns the order being picked up.
func (c VerifyHandoverCodeCommand) OrderID() kernel.UUID { return c.orderID }

// SubmittedCode returns the code the courier typed in.
func (c VerifyHandoverCodeCommand) SubmittedCode() string { return c.submittedCode }
