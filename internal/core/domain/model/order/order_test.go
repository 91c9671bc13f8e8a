package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.GenerateOrderNumber(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		method,
		decimal.NewFromInt(500),
		decimal.NewFromInt(40),
		decimal.NewFromInt(25),
		decimal.NewFromInt(50),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	validCustomer := kernel.NewUUID()
	validStore := kernel.NewUUID()

	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, "ORD12345678", validCustomer, validStore, order.UPI,
			decimal.NewFromInt(500), decimal.NewFromInt(40),
			decimal.NewFromInt(25), decimal.NewFromInt(50),
		)

		require.NoError(t, err)
		assert.NotNil(t, o)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.Equal(t, "ORD12345678", o.OrderNumber())
		assert.Equal(t, order.Placed, o.Status())
		assert.Equal(t, order.PaymentUnpaid, o.PaymentStatus())
		assert.Equal(t, order.UPI, o.PaymentMethod())
		assert.True(t, o.TotalAmount().Equal(decimal.NewFromInt(515)))
		assert.Nil(t, o.HandoverCode())
		assert.Nil(t, o.DeliveryCode())
		assert.Nil(t, o.HandedToCourierAt())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(
			invalidID, "ORD12345678", validCustomer, validStore, order.UPI,
			decimal.NewFromInt(500), decimal.Zero, decimal.Zero, decimal.Zero,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with empty order number", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, "", validCustomer, validStore, order.UPI,
			decimal.NewFromInt(500), decimal.Zero, decimal.Zero, decimal.Zero,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "order number")
	})

	t.Run("should fail with unknown payment method", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, "ORD12345678", validCustomer, validStore, order.PaymentMethodUnknown,
			decimal.NewFromInt(500), decimal.Zero, decimal.Zero, decimal.Zero,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "payment method")
	})

	t.Run("should fail with negative subtotal", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, "ORD12345678", validCustomer, validStore, order.Card,
			decimal.NewFromInt(-1), decimal.Zero, decimal.Zero, decimal.Zero,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "subtotal")
	})

	t.Run("should fail when discount exceeds order value", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, "ORD12345678", validCustomer, validStore, order.Card,
			decimal.NewFromInt(100), decimal.NewFromInt(10),
			decimal.Zero, decimal.NewFromInt(200),
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "total amount")
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(
			invalidID, "", validCustomer, validStore, order.PaymentMethodUnknown,
			decimal.NewFromInt(500), decimal.Zero, decimal.Zero, decimal.Zero,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "order number")
		assert.Contains(t, err.Error(), "payment method")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should pass validation for properly constructed order", func(t *testing.T) {
		o := newTestOrder(t, order.UPI)

		require.NoError(t, o.Validate())
	})

	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_Transition(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	actor := kernel.NewUUID()

	advance := func(t *testing.T, o *order.Order, statuses ...order.Status) {
		t.Helper()
		for _, s := range statuses {
			_, err := o.Transition(s, actor, "", now)
			require.NoError(t, err)
		}
	}

	t.Run("should walk the happy path for a paid prepaid order", func(t *testing.T) {
		o := newTestOrder(t, order.UPI)
		require.NoError(t, o.MarkPaid())

		advance(t, o,
			order.Confirmed, order.Preparing, order.Packed, order.ReadyForPickup,
			order.HandedToCourier, order.OutForDelivery, order.Delivered,
		)

		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("should return event recording the transition", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)

		event, err := o.Transition(order.Confirmed, actor, "merchant accepted", now)

		require.NoError(t, err)
		require.NotNil(t, event)
		require.NoError(t, event.Validate())
		assert.True(t, event.OrderID().IsEqual(o.ID()))
		assert.Equal(t, order.Placed, event.FromStatus())
		assert.Equal(t, order.Confirmed, event.Status())
		assert.True(t, event.ActorID().IsEqual(actor))
		assert.Equal(t, "merchant accepted", event.Note())
		assert.Equal(t, now, event.OccurredAt())
	})

	t.Run("should fail with invalid transition and leave status unchanged", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)

		event, err := o.Transition(order.Delivered, actor, "", now)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Nil(t, event)
		assert.Equal(t, order.Placed, o.Status())
	})

	t.Run("should fail transition to same status", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)

		_, err := o.Transition(order.Placed, actor, "", now)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should fail with payment required for unpaid prepaid order", func(t *testing.T) {
		o := newTestOrder(t, order.Card)

		event, err := o.Transition(order.Confirmed, actor, "", now)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrPaymentRequired)
		assert.Nil(t, event)
		assert.Equal(t, order.Placed, o.Status())
	})

	t.Run("should fail with payment required after payment failure", func(t *testing.T) {
		o := newTestOrder(t, order.Wallet)
		require.NoError(t, o.MarkPaymentFailed())

		_, err := o.Transition(order.Confirmed, actor, "", now)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrPaymentRequired)
	})

	t.Run("should not gate cash on delivery orders", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)

		advance(t, o,
			order.Confirmed, order.Preparing, order.Packed, order.ReadyForPickup,
			order.HandedToCourier, order.OutForDelivery, order.Delivered,
		)

		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.PaymentUnpaid, o.PaymentStatus())
	})

	t.Run("should not gate cancellation of unpaid order", func(t *testing.T) {
		o := newTestOrder(t, order.Card)

		_, err := o.Transition(order.Cancelled, actor, "customer changed mind", now)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should stamp handed to courier timestamp", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)
		advance(t, o, order.Confirmed, order.Preparing, order.Packed, order.ReadyForPickup)

		pickupAt := now.Add(20 * time.Minute)
		_, err := o.Transition(order.HandedToCourier, actor, "", pickupAt)

		require.NoError(t, err)
		require.NotNil(t, o.HandedToCourierAt())
		assert.Equal(t, pickupAt, *o.HandedToCourierAt())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("should stamp delivered timestamp", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)
		advance(t, o,
			order.Confirmed, order.Preparing, order.Packed, order.ReadyForPickup,
			order.HandedToCourier, order.OutForDelivery,
		)

		deliveredAt := now.Add(45 * time.Minute)
		_, err := o.Transition(order.Delivered, actor, "", deliveredAt)

		require.NoError(t, err)
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
	})

	t.Run("should flip payment status to refunded on refund", func(t *testing.T) {
		o := newTestOrder(t, order.UPI)
		require.NoError(t, o.MarkPaid())
		advance(t, o,
			order.Confirmed, order.Preparing, order.Packed, order.ReadyForPickup,
			order.HandedToCourier, order.OutForDelivery, order.Delivered,
		)

		_, err := o.Transition(order.Refunded, actor, "damaged package", now)

		require.NoError(t, err)
		assert.Equal(t, order.Refunded, o.Status())
		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	})

	t.Run("should reject any transition out of terminal status", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)
		advance(t, o, order.Cancelled)

		for _, target := range order.AllStatuses() {
			_, err := o.Transition(target, actor, "", now)

			require.Error(t, err, "transition to %s", target)
		}
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrder_RecordCodes(t *testing.T) {
	t.Run("should record handover code once", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)

		err := o.RecordHandoverCode("483921")

		require.NoError(t, err)
		require.NotNil(t, o.HandoverCode())
		assert.Equal(t, "483921", *o.HandoverCode())
	})

	t.Run("should reject second handover code", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)
		require.NoError(t, o.RecordHandoverCode("483921"))

		err := o.RecordHandoverCode("111111")

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrHandoverCodeAlreadySet)
		assert.Equal(t, "483921", *o.HandoverCode())
	})

	t.Run("should record delivery code once", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)

		err := o.RecordDeliveryCode("775310")

		require.NoError(t, err)
		require.NotNil(t, o.DeliveryCode())
		assert.Equal(t, "775310", *o.DeliveryCode())
	})

	t.Run("should reject second delivery code", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)
		require.NoError(t, o.RecordDeliveryCode("775310"))

		err := o.RecordDeliveryCode("222222")

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrDeliveryCodeAlreadySet)
	})

	t.Run("should track handover and delivery codes independently", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)

		require.NoError(t, o.RecordHandoverCode("483921"))
		require.NoError(t, o.RecordDeliveryCode("775310"))

		assert.Equal(t, "483921", *o.HandoverCode())
		assert.Equal(t, "775310", *o.DeliveryCode())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore order with full state", func(t *testing.T) {
		id := kernel.NewUUID()
		handoverCode := "483921"
		pickupAt := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)

		o, err := order.RestoreOrder(
			id, "ORD99887766", kernel.NewUUID(), kernel.NewUUID(),
			order.OutForDelivery, order.PaymentPaid, order.Card,
			decimal.NewFromInt(500), decimal.NewFromInt(40),
			decimal.NewFromInt(25), decimal.Zero,
			&handoverCode, nil, &pickupAt, nil,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.OutForDelivery, o.Status())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.Equal(t, "483921", *o.HandoverCode())
		assert.Nil(t, o.DeliveryCode())
		assert.Equal(t, pickupAt, *o.HandedToCourierAt())
	})

	t.Run("should fail restoring with unknown status", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD99887766", kernel.NewUUID(), kernel.NewUUID(),
			order.StatusUnknown, order.PaymentPaid, order.Card,
			decimal.NewFromInt(500), decimal.Zero, decimal.Zero, decimal.Zero,
			nil, nil, nil, nil,
		)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should allow further transitions after restore", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD99887766", kernel.NewUUID(), kernel.NewUUID(),
			order.OutForDelivery, order.PaymentPaid, order.Card,
			decimal.NewFromInt(500), decimal.Zero, decimal.Zero, decimal.Zero,
			nil, nil, nil, nil,
		)
		require.NoError(t, err)

		_, err = o.Transition(order.Delivered, kernel.NewUUID(), "", time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
	})
}

func TestGenerateOrderNumber(t *testing.T) {
	t.Run("should produce ORD prefix with eight digits", func(t *testing.T) {
		n := order.GenerateOrderNumber()

		require.Len(t, n, 11)
		assert.Equal(t, "ORD", n[:3])
		for _, c := range n[3:] {
			assert.True(t, c >= '0' && c <= '9', "unexpected character %q", c)
		}
	})
}
