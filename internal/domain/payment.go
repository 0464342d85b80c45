package domain

import "time"

const PaymentMethodCash = "cash"

// Payment is an immutable journal row. Refunds are not a negative payment;
// nothing in this journal ever decreases an order's paid amount.
type Payment struct {
	ID        uint
	OrderID   uint
	ActorID   int
	Amount    float64
	Method    string
	Reference *string
	Notes     *string
	CreatedAt time.Time
}
