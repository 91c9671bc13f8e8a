package commands

import (
	"math/rand/v2"

	"fulfillment/internal/core/domain/model/kernel"
)

// Handover codes avoid characters that read ambiguously over the phone
// (0/O, 1/I/L).
const (
	codeCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

	minCodeLength     = 4
	maxCodeLength     = 8
	defaultCodeLength = 6
)

// normalizeCodeLength clamps configured code lengths to the supported
// range, falling back to the default for out-of-range values.
func normalizeCodeLength(length int) int {
	if length < minCodeLength || length > maxCodeLength {
		return defaultCodeLength
	}
	return length
}

// generateCode produces a one-time handover code of the given length.
func generateCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = codeCharset[rand.IntN(len(codeCharset))] //nolint:gosec // short-lived, rate-limited at the edge
	}
	return string(b)
}

// TTL store key layout. One live code per (order, purpose) pair.
func merchantHandoverKey(orderID kernel.UUID) string {
	return "handover:merchant:" + orderID.String()
}

func customerDeliveryKey(orderID kernel.UUID) string {
	return "handover:customer:" + orderID.String()
}

// noAgentAlertKey dedupes the ops alert raised when no agent is available,
// one alert per order per sweep cycle.
func noAgentAlertKey(orderID kernel.UUID) string {
	return "assign:alert:" + orderID.String()
}
