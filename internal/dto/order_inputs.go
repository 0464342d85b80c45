package dto

// Workflow-level inputs. The HTTP layer validates shape; domain invariants
// (stock sufficiency, transition legality) are enforced further down.

type OrderItemInput struct {
	ProductID int
	Quantity  int
	// Price overrides the catalog price when set (negotiated price at the till).
	Price *float64
}

type CreateOrderInput struct {
	CustomerID   int
	Items        []OrderItemInput
	Tax          float64
	Discount     float64
	ShippingCost float64
	Notes        *string
}

type PaymentInput struct {
	Amount    float64
	Method    string
	Reference *string
	Notes     *string
}

type StockAdjustmentInput struct {
	// Type is increase or adjustment; decreases only happen through orders.
	// Quantity is the amount to add for increase, or the absolute stock value
	// for adjustment.
	Type     string
	Quantity int
	Reason   string
	Notes    *string
}
