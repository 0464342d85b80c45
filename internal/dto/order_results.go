package dto

import "warung/internal/domain"

// OrderDetail is the aggregate returned by order-affecting operations: the
// order row plus everything it owns.
type OrderDetail struct {
	Order    domain.Order
	Items    []domain.OrderItem
	Payments []domain.Payment
}

type PaymentReceipt struct {
	Payment domain.Payment
	Order   domain.Order
}
