package domain

import "time"

type Order struct {
	ID            uint
	MerchantID    int
	CustomerID    int
	OrderCode     string
	Status        string
	PaymentStatus string
	Subtotal      float64
	Tax           float64
	Discount      float64
	ShippingCost  float64
	TotalPrice    float64
	PaidAmount    float64
	ChangeAmount  float64
	Notes         *string
	OrderedAt     time.Time
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPartial  = "partial"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// orderTransitions encodes the order lifecycle. completed and cancelled are
// terminal: no target set exists for them.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
}

func (o Order) CanTransitionTo(target string) bool {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (o Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

func (o Order) IsOpen() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessing
}

// CalculateTotals derives the order total from its constituents. Idempotent:
// repeated calls with unchanged inputs leave TotalPrice unchanged.
func (o *Order) CalculateTotals() {
	o.TotalPrice = o.Subtotal + o.Tax + o.ShippingCost - o.Discount
}

// DerivePaymentStatus maps the cumulative paid amount to the payment axis.
// Status transitions never touch this; only recorded payments do.
func (o *Order) DerivePaymentStatus() {
	switch {
	case o.PaidAmount >= o.TotalPrice && o.PaidAmount > 0:
		o.PaymentStatus = PaymentStatusPaid
	case o.PaidAmount > 0:
		o.PaymentStatus = PaymentStatusPartial
	default:
		o.PaymentStatus = PaymentStatusPending
	}
}

func (o *Order) ApplyPayment(amount float64) {
	o.PaidAmount += amount
	o.ChangeAmount = o.PaidAmount - o.TotalPrice
	if o.ChangeAmount < 0 {
		o.ChangeAmount = 0
	}
	o.DerivePaymentStatus()
}

func (o Order) RemainingAmount() float64 {
	remaining := o.TotalPrice - o.PaidAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (o Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}
