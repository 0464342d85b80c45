package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_CalculateTotals(t *testing.T) {
	order := Order{
		Subtotal:     25,
		Tax:          2,
		ShippingCost: 3,
		Discount:     1,
	}

	order.CalculateTotals()

	assert.Equal(t, 29.0, order.TotalPrice)
}

func TestOrder_CalculateTotals_Idempotent(t *testing.T) {
	order := Order{
		Subtotal:     100,
		Tax:          10,
		ShippingCost: 5,
		Discount:     15,
	}

	order.CalculateTotals()
	first := order.TotalPrice
	order.CalculateTotals()

	assert.Equal(t, first, order.TotalPrice)
	assert.Equal(t, 100.0, order.TotalPrice)
}

func TestOrder_CanTransitionTo(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to processing", OrderStatusPending, OrderStatusProcessing, true},
		{"pending to completed", OrderStatusPending, OrderStatusCompleted, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"processing to completed", OrderStatusProcessing, OrderStatusCompleted, true},
		{"processing to cancelled", OrderStatusProcessing, OrderStatusCancelled, true},
		{"processing back to pending", OrderStatusProcessing, OrderStatusPending, false},
		{"completed is terminal", OrderStatusCompleted, OrderStatusProcessing, false},
		{"completed to cancelled", OrderStatusCompleted, OrderStatusCancelled, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, false},
		{"cancelled to completed", OrderStatusCancelled, OrderStatusCompleted, false},
		{"no self transition", OrderStatusPending, OrderStatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := Order{Status: tc.from}
			assert.Equal(t, tc.allowed, order.CanTransitionTo(tc.to))
		})
	}
}

func TestOrder_IsTerminal(t *testing.T) {
	assert.False(t, Order{Status: OrderStatusPending}.IsTerminal())
	assert.False(t, Order{Status: OrderStatusProcessing}.IsTerminal())
	assert.True(t, Order{Status: OrderStatusCompleted}.IsTerminal())
	assert.True(t, Order{Status: OrderStatusCancelled}.IsTerminal())
}

func TestOrder_ApplyPayment_Partial(t *testing.T) {
	order := Order{TotalPrice: 20, PaymentStatus: PaymentStatusPending}

	order.ApplyPayment(10)

	assert.Equal(t, 10.0, order.PaidAmount)
	assert.Equal(t, 0.0, order.ChangeAmount)
	assert.Equal(t, PaymentStatusPartial, order.PaymentStatus)
}

func TestOrder_ApplyPayment_OverpaymentGivesChange(t *testing.T) {
	order := Order{TotalPrice: 20, PaymentStatus: PaymentStatusPending}

	order.ApplyPayment(10)
	order.ApplyPayment(15)

	assert.Equal(t, 25.0, order.PaidAmount)
	assert.Equal(t, 5.0, order.ChangeAmount)
	assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
}

func TestOrder_DerivePaymentStatus_ZeroPaidStaysPending(t *testing.T) {
	order := Order{TotalPrice: 20}

	order.DerivePaymentStatus()

	assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
}

func TestOrder_RemainingAmount(t *testing.T) {
	order := Order{TotalPrice: 20, PaidAmount: 5}
	assert.Equal(t, 15.0, order.RemainingAmount())

	order.PaidAmount = 25
	assert.Equal(t, 0.0, order.RemainingAmount())
}
